package analytics

import (
	"math"
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Distribution resume a distribuição de um conjunto de valores
type Distribution struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	StdDev float64 `json:"stdDev"`
}

// Describe calcula o resumo. Mediana e quartis usam o elemento de índice floor(n*p) da amostra ordenada.
func Describe(values []float64) (Distribution, error) {
	if len(values) == 0 {
		return Distribution{}, domain.ErrEmptySeries
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	mean, variance := meanAndVariance(values)

	return Distribution{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: sorted[n/2],
		Q1:     sorted[int(math.Floor(float64(n)*0.25))],
		Q3:     sorted[int(math.Floor(float64(n)*0.75))],
		StdDev: math.Sqrt(variance),
	}, nil
}
