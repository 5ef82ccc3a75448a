package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bucket é a receita e a quantidade de vendas de uma faixa de tempo
type Bucket struct {
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

var weekdayLabels = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// BucketByWeekday distribui as vendas pelos sete dias da semana, começando no domingo
func BucketByWeekday(sales []DatedSale) []Bucket {
	buckets := make([]Bucket, len(weekdayLabels))
	for i, label := range weekdayLabels {
		buckets[i] = Bucket{Label: label, Revenue: decimal.Zero}
	}
	for _, sale := range sales {
		b := &buckets[int(sale.At.Weekday())]
		b.Revenue = b.Revenue.Add(sale.TotalAmount)
		b.Count++
	}
	return buckets
}

// BucketByHour distribui as vendas pelas 24 horas do dia
func BucketByHour(sales []DatedSale) []Bucket {
	buckets := make([]Bucket, 24)
	for hour := range buckets {
		buckets[hour] = Bucket{Label: fmt.Sprintf("%d:00", hour), Revenue: decimal.Zero}
	}
	for _, sale := range sales {
		b := &buckets[sale.At.Hour()]
		b.Revenue = b.Revenue.Add(sale.TotalAmount)
		b.Count++
	}
	return buckets
}

var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// BucketByMonth distribui as vendas pelos doze meses do ano, de janeiro a dezembro
func BucketByMonth(sales []DatedSale) []Bucket {
	buckets := make([]Bucket, len(monthLabels))
	for i, label := range monthLabels {
		buckets[i] = Bucket{Label: label, Revenue: decimal.Zero}
	}
	for _, sale := range sales {
		b := &buckets[int(sale.At.Month())-1]
		b.Revenue = b.Revenue.Add(sale.TotalAmount)
		b.Count++
	}
	return buckets
}
