package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// StartOfWeek retorna o início (00:00) do dia mais recente, incluindo hoje, cujo dia da semana é firstDay
func StartOfWeek(now time.Time, firstDay time.Weekday) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(today.Weekday()) - int(firstDay) + 7) % 7
	return today.AddDate(0, 0, -offset)
}

func getFirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// ComparisonWindows calcula a janela atual (inclusiva até now) e a anterior (fim exclusivo)
func ComparisonWindows(kind domain.WindowKind, now time.Time, firstDay time.Weekday) (domain.TimeRange, domain.TimeRange, error) {
	var start, previousStart time.Time

	switch kind {
	case domain.WindowWeek:
		start = StartOfWeek(now, firstDay)
		previousStart = start.AddDate(0, 0, -7)
	case domain.WindowMonth:
		start = getFirstDayOfMonth(now)
		previousStart = start.AddDate(0, -1, 0)
	default:
		return domain.TimeRange{}, domain.TimeRange{}, domain.ErrInvalidWindowKind
	}

	current := domain.TimeRange{From: start, To: now}
	previous := domain.TimeRange{From: previousStart, To: start, ToExclusive: true}
	return current, previous, nil
}

// Compare compara a receita do período atual com a do período anterior
func Compare(sales []DatedSale, kind domain.WindowKind, now Clock, firstDay time.Weekday) (domain.ComparisonResult, error) {
	return CompareBy(sales, kind, now, firstDay, SaleRevenue)
}

// CompareBy compara qualquer métrica por venda entre o período atual e o anterior
func CompareBy(sales []DatedSale, kind domain.WindowKind, now Clock, firstDay time.Weekday, valueFn func(DatedSale) decimal.Decimal) (domain.ComparisonResult, error) {
	current, previous, err := ComparisonWindows(kind, now(), firstDay)
	if err != nil {
		return domain.ComparisonResult{}, err
	}

	currentValue, previousValue := decimal.Zero, decimal.Zero
	for _, sale := range sales {
		switch {
		case current.Contains(sale.At):
			currentValue = currentValue.Add(valueFn(sale))
		case previous.Contains(sale.At):
			previousValue = previousValue.Add(valueFn(sale))
		}
	}

	return domain.ComparisonResult{
		CurrentValue:  currentValue,
		PreviousValue: previousValue,
		ChangePercent: ChangePercent(currentValue, previousValue),
		Current:       current,
		Previous:      previous,
	}, nil
}

// ChangePercent retorna (current - previous) / previous * 100, ou nil quando previous é zero
func ChangePercent(current, previous decimal.Decimal) *float64 {
	if previous.IsZero() {
		return nil
	}

	pct := current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
	return &pct
}
