// Package analytics contém o motor de agregação dos dashboards: filtro de período,
// atribuição de categorias, agregação, séries temporais, estatísticas, ranking,
// comparação entre períodos e composição de KPIs.
//
// Todas as funções são puras. O "agora" sempre chega por um Clock injetado.
package analytics

import "time"

// Clock retorna o instante considerado "agora" pelo cálculo
type Clock func() time.Time

// FixedClock retorna um Clock que sempre devolve t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// StabilityThresholds define as faixas de classificação do score de estabilidade.
// Score acima de Stable é estável, acima de Moderate é moderado e o restante é volátil.
type StabilityThresholds struct {
	Stable   float64
	Moderate float64
}

// Options reúne os parâmetros de política do motor. Nenhum deles é fixo no código.
type Options struct {
	MovingAverageWindow  int
	TopN                 int
	FirstDayOfWeek       time.Weekday
	Location             *time.Location
	LowStockThreshold    int
	Stability            StabilityThresholds
	GrossMarginPercent   float64
	OperatingCostPercent float64
	ForecastDays         int
	ExcludeCancelled     bool
}

// DefaultOptions retorna os valores usados pelo console original
func DefaultOptions() Options {
	return Options{
		MovingAverageWindow:  7,
		TopN:                 5,
		FirstDayOfWeek:       time.Sunday,
		Location:             time.UTC,
		LowStockThreshold:    10,
		Stability:            StabilityThresholds{Stable: 70, Moderate: 40},
		GrossMarginPercent:   30,
		OperatingCostPercent: 15,
		ForecastDays:         7,
	}
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}
