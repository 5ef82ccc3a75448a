package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestTopN(t *testing.T) {
	tests := []struct {
		name     string
		agg      *Aggregation[string]
		n        int
		expected []string
	}{
		{
			name:     "empate resolvido pelo rótulo em ordem crescente",
			agg:      aggregationOf("B", "50", "C", "10", "A", "50"),
			n:        2,
			expected: []string{"A", "B"},
		},
		{
			name:     "n maior que o número de chaves retorna todas",
			agg:      aggregationOf("x", "1", "y", "3", "z", "2"),
			n:        10,
			expected: []string{"y", "z", "x"},
		},
		{
			name:     "n igual a zero retorna vazio",
			agg:      aggregationOf("x", "1"),
			n:        0,
			expected: []string{},
		},
		{
			name:     "agregação vazia",
			agg:      NewAggregation[string](),
			n:        5,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := TopN(tt.agg, tt.n)
			require.NoError(t, err)

			assert.LessOrEqual(t, len(entries), max(tt.n, 0))
			assert.Equal(t, tt.expected, keysOf(entries))
			for i, entry := range entries {
				assert.Equal(t, i+1, entry.Rank)
				if i > 0 {
					assert.True(t, entries[i-1].Value.GreaterThanOrEqual(entry.Value))
				}
			}
		})
	}
}

func TestTopN_Negative(t *testing.T) {
	entries, err := TopN(aggregationOf("a", "1"), -1)

	assert.Nil(t, entries)
	assert.True(t, errors.Is(err, domain.ErrNegativeTopN))
}

func TestTopNLabeled_TieBreakUsesLabel(t *testing.T) {
	agg := aggregationOf("1", "30", "2", "30", "3", "40")
	labels := map[string]string{"1": "Zeta", "2": "Alfa", "3": "Beta"}

	entries, err := TopNLabeled(agg, 3, func(key string) string { return labels[key] })
	require.NoError(t, err)

	assert.Equal(t, []string{"3", "2", "1"}, keysOf(entries))
	assert.Equal(t, "Beta", entries[0].Label)
	assert.Equal(t, "Alfa", entries[1].Label)
}

func TestTopNLabeled_EmptyLabelKeepsKey(t *testing.T) {
	entries, err := TopNLabeled(aggregationOf("ana", "10"), 1, func(string) string { return "" })
	require.NoError(t, err)

	assert.Equal(t, "ana", entries[0].Label)
}

func TestPositionOf(t *testing.T) {
	entries := Rank(aggregationOf("ana", "10", "bruno", "30", "carla", "20"), nil)

	assert.Equal(t, 1, PositionOf(entries, "bruno"))
	assert.Equal(t, 2, PositionOf(entries, "carla"))
	assert.Equal(t, 3, PositionOf(entries, "ana"))
	assert.Equal(t, 0, PositionOf(entries, "daniel"))
}
