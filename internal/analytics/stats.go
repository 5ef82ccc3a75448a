package analytics

import (
	"math"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type StabilityBand string

const (
	StabilityStable   StabilityBand = "STABLE"
	StabilityModerate StabilityBand = "MODERATE"
	StabilityVolatile StabilityBand = "VOLATILE"
)

// ComputeStats calcula média, variância populacional, desvio padrão, score de estabilidade
// e os pontos de maior e menor receita. Em empate vence a data mais antiga.
func ComputeStats(series []domain.DailyRevenuePoint) (domain.SeriesStats, error) {
	if len(series) == 0 {
		return domain.SeriesStats{}, domain.ErrEmptySeries
	}

	values := Revenues(series)
	mean, variance := meanAndVariance(values)
	stdDev := math.Sqrt(variance)

	best, worst := series[0], series[0]
	for _, point := range series[1:] {
		if cmp := point.Revenue.Cmp(best.Revenue); cmp > 0 || (cmp == 0 && point.Date.Before(best.Date)) {
			best = point
		}
		if cmp := point.Revenue.Cmp(worst.Revenue); cmp < 0 || (cmp == 0 && point.Date.Before(worst.Date)) {
			worst = point
		}
	}

	return domain.SeriesStats{
		Mean:           mean,
		Variance:       variance,
		StdDev:         stdDev,
		StabilityScore: StabilityScore(mean, stdDev),
		BestPoint:      best,
		WorstPoint:     worst,
	}, nil
}

// StabilityScore retorna max(0, 100 - stdDev/mean*100), limitado a [0, 100].
// Média zero ou negativa resulta em 0.
func StabilityScore(mean, stdDev float64) float64 {
	if mean <= 0 || math.IsNaN(mean) || math.IsNaN(stdDev) {
		return 0
	}

	score := 100 - (stdDev/mean)*100
	return math.Min(100, math.Max(0, score))
}

// ClassifyStability enquadra o score nas faixas configuradas
func ClassifyStability(score float64, thresholds StabilityThresholds) StabilityBand {
	switch {
	case score > thresholds.Stable:
		return StabilityStable
	case score > thresholds.Moderate:
		return StabilityModerate
	default:
		return StabilityVolatile
	}
}

func meanAndVariance(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	squares := 0.0
	for _, v := range values {
		squares += (v - mean) * (v - mean)
	}

	return mean, squares / n
}
