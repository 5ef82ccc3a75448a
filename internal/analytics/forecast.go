package analytics

import (
	"math"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ForecastPoint é um valor projetado para um dia futuro
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Forecast projeta days dias a partir do último ponto da série.
// Base: média dos últimos min(7, max(2, n/2)) pontos; tendência: (base - primeira receita) / n.
// Valores negativos viram zero. Séries com menos de dois pontos não geram projeção.
func Forecast(series []domain.DailyRevenuePoint, days int) []ForecastPoint {
	if len(series) < 2 || days <= 0 {
		return []ForecastPoint{}
	}

	n := len(series)
	window := min(7, max(2, n/2))
	values := Revenues(series)

	base := 0.0
	for _, v := range values[n-window:] {
		base += v
	}
	base /= float64(window)
	trend := (base - values[0]) / float64(n)

	last := series[n-1].Date
	forecast := make([]ForecastPoint, days)
	for i := 1; i <= days; i++ {
		forecast[i-1] = ForecastPoint{
			Date:  last.AddDate(0, 0, i),
			Value: utils.RoundWithTwoDecimalPlace(math.Max(0, base+trend*float64(i))),
		}
	}

	return forecast
}
