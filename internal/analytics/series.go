package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DayKey trunca t para o início do dia em loc
func DayKey(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DailyRevenue agrupa o total das vendas por dia civil em loc
func DailyRevenue(sales []DatedSale, loc *time.Location) *Aggregation[time.Time] {
	return Aggregate(sales, func(sale DatedSale) time.Time {
		return DayKey(sale.At, loc)
	}, SaleRevenue)
}

// BuildSeries ordena a agregação diária por data e calcula a média móvel simples
// sobre a janela [max(0, i-window+1), i]. Dias sem vendas não geram pontos.
func BuildSeries(daily *Aggregation[time.Time], window int) ([]domain.DailyRevenuePoint, error) {
	if window < 1 {
		return nil, domain.ErrInvalidWindow
	}

	days := daily.Keys()
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([]domain.DailyRevenuePoint, len(days))
	for i, day := range days {
		revenue, _ := daily.Get(day)
		series[i] = domain.DailyRevenuePoint{Date: day, Revenue: revenue}
	}

	for i := range series {
		start := max(0, i-window+1)
		sum := decimal.Zero
		for _, point := range series[start : i+1] {
			sum = sum.Add(point.Revenue)
		}
		series[i].MovingAverage = sum.Div(decimal.NewFromInt(int64(i - start + 1)))
	}

	return series, nil
}

// Revenues extrai a receita de cada ponto
func Revenues(series []domain.DailyRevenuePoint) []float64 {
	values := make([]float64, len(series))
	for i, point := range series {
		values[i] = point.Revenue.InexactFloat64()
	}
	return values
}
