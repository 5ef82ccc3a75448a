package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func seriesOf(revenues ...string) []domain.DailyRevenuePoint {
	sales := make([]DatedSale, len(revenues))
	for i, revenue := range revenues {
		sales[i] = dated(int64(i+1), day(2024, 3, 1).AddDate(0, 0, i), revenue, "ana")
	}
	series, _ := BuildSeries(DailyRevenue(sales, time.UTC), 7)
	return series
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		series   []domain.DailyRevenuePoint
		validate func(t *testing.T, stats domain.SeriesStats)
	}{
		{
			name:   "três dias com receitas crescentes",
			series: seriesOf("100", "200", "300"),
			validate: func(t *testing.T, stats domain.SeriesStats) {
				assert.InDelta(t, 200.0, stats.Mean, 1e-9)
				assert.InDelta(t, 20000.0/3, stats.Variance, 1e-9)
				assert.InDelta(t, math.Sqrt(20000.0/3), stats.StdDev, 1e-9)
				assert.InDelta(t, 100-math.Sqrt(20000.0/3)/2, stats.StabilityScore, 1e-9)
				assert.Equal(t, day(2024, 3, 3), stats.BestPoint.Date)
				assert.Equal(t, day(2024, 3, 1), stats.WorstPoint.Date)
			},
		},
		{
			name:   "receita constante tem estabilidade máxima",
			series: seriesOf("80", "80", "80"),
			validate: func(t *testing.T, stats domain.SeriesStats) {
				assert.Equal(t, 0.0, stats.Variance)
				assert.Equal(t, 100.0, stats.StabilityScore)
			},
		},
		{
			name:   "receita zerada tem estabilidade zero",
			series: seriesOf("0", "0"),
			validate: func(t *testing.T, stats domain.SeriesStats) {
				assert.Equal(t, 0.0, stats.Mean)
				assert.Equal(t, 0.0, stats.StabilityScore)
			},
		},
		{
			name:   "alta volatilidade é limitada a zero",
			series: seriesOf("0", "0", "0", "1000"),
			validate: func(t *testing.T, stats domain.SeriesStats) {
				assert.Equal(t, 0.0, stats.StabilityScore)
			},
		},
		{
			name:   "empate mantém a data mais antiga",
			series: seriesOf("50", "10", "50", "10"),
			validate: func(t *testing.T, stats domain.SeriesStats) {
				assert.Equal(t, day(2024, 3, 1), stats.BestPoint.Date)
				assert.Equal(t, day(2024, 3, 2), stats.WorstPoint.Date)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := ComputeStats(tt.series)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, stats.StabilityScore, 0.0)
			assert.LessOrEqual(t, stats.StabilityScore, 100.0)
			tt.validate(t, stats)
		})
	}
}

func TestComputeStats_EmptySeries(t *testing.T) {
	_, err := ComputeStats(nil)

	assert.True(t, errors.Is(err, domain.ErrEmptySeries))
	assert.True(t, domain.IsPrecondition(err))
}

func TestStabilityScore_Guards(t *testing.T) {
	assert.Equal(t, 0.0, StabilityScore(0, 10))
	assert.Equal(t, 0.0, StabilityScore(-5, 1))
	assert.Equal(t, 0.0, StabilityScore(math.NaN(), 1))
	assert.Equal(t, 50.0, StabilityScore(100, 50))
}

func TestClassifyStability(t *testing.T) {
	thresholds := StabilityThresholds{Stable: 70, Moderate: 40}

	tests := []struct {
		score    float64
		expected StabilityBand
	}{
		{score: 95, expected: StabilityStable},
		{score: 70.01, expected: StabilityStable},
		{score: 70, expected: StabilityModerate},
		{score: 41, expected: StabilityModerate},
		{score: 40, expected: StabilityVolatile},
		{score: 0, expected: StabilityVolatile},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyStability(tt.score, thresholds), "score %.2f", tt.score)
	}
}
