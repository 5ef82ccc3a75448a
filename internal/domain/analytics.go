package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange é um intervalo [From, To]. Quando ToExclusive é verdadeiro o limite final não pertence ao intervalo.
type TimeRange struct {
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	ToExclusive bool      `json:"toExclusive"`
}

// Contains informa se t pertence ao intervalo
func (r TimeRange) Contains(t time.Time) bool {
	if t.Before(r.From) {
		return false
	}
	if r.ToExclusive {
		return t.Before(r.To)
	}
	return !t.After(r.To)
}

// DailyRevenuePoint é um ponto da série diária de receita
type DailyRevenuePoint struct {
	Date          time.Time       `json:"date"`
	Revenue       decimal.Decimal `json:"revenue"`
	MovingAverage decimal.Decimal `json:"movingAverage"`
}

// RankingEntry é uma posição de ranking. Rank começa em 1.
type RankingEntry struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Rank  int             `json:"rank"`
}

// ComparisonResult compara o período atual com o anterior.
// ChangePercent é nil quando não existe base de comparação (PreviousValue == 0).
type ComparisonResult struct {
	CurrentValue  decimal.Decimal `json:"currentValue"`
	PreviousValue decimal.Decimal `json:"previousValue"`
	ChangePercent *float64        `json:"changePercent"`
	Current       TimeRange       `json:"current"`
	Previous      TimeRange       `json:"previous"`
}

// SeriesStats reúne as estatísticas de uma série diária
type SeriesStats struct {
	Mean           float64           `json:"mean"`
	Variance       float64           `json:"variance"`
	StdDev         float64           `json:"stdDev"`
	StabilityScore float64           `json:"stabilityScore"`
	BestPoint      DailyRevenuePoint `json:"bestPoint"`
	WorstPoint     DailyRevenuePoint `json:"worstPoint"`
}

// KpiSet é o conjunto plano de indicadores de uma visão. É recriado a cada cálculo.
type KpiSet map[string]any

// SellerStanding é a posição de um vendedor no ranking mensal de receita.
// PositionChange positivo indica que o vendedor subiu em relação ao mês anterior.
type SellerStanding struct {
	Username         string          `json:"username"`
	Name             string          `json:"name"`
	Revenue          decimal.Decimal `json:"revenue"`
	SalesCount       int             `json:"salesCount"`
	Position         int             `json:"position"`
	PreviousPosition int             `json:"previousPosition"`
	PositionChange   int             `json:"positionChange"`
}

// SellerRankingResponse é o ranking mensal de vendedores
type SellerRankingResponse struct {
	Month      string           `json:"month"` // Formato mm-yyyy
	Ranking    []SellerStanding `json:"ranking"`
	MyPosition int              `json:"myPosition,omitempty"`
	LastUpdate time.Time        `json:"lastUpdate"`
}
