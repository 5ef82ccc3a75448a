package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DatedSale é uma venda com a data já interpretada
type DatedSale struct {
	domain.SaleRecord
	At time.Time
}

// PeriodResult é o resultado do filtro de período
type PeriodResult struct {
	Sales   []DatedSale
	Quality QualityReport
}

var saleDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseSaleDate interpreta a data de venda. Datas sem fuso são lidas em loc.
func ParseSaleDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("data vazia")
	}

	for _, layout := range saleDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed.In(loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("formato de data não reconhecido: %q", value)
}

// FilterByPeriod restringe as vendas à janela pedida.
// Vendas com data inválida ou valor negativo são excluídas e contabilizadas no relatório de qualidade.
func FilterByPeriod(records []domain.SaleRecord, spec domain.PeriodSpec, now Clock, loc *time.Location) (PeriodResult, error) {
	if loc == nil {
		loc = time.UTC
	}

	inPeriod, err := periodMatcher(spec, now().In(loc))
	if err != nil {
		return PeriodResult{}, err
	}

	result := PeriodResult{Sales: make([]DatedSale, 0, len(records))}
	for _, record := range records {
		at, err := ParseSaleDate(record.SaleDate, loc)
		if err != nil {
			result.Quality.add(domain.DataQualityError{
				Kind:     domain.IssueUnparsableDate,
				RecordID: saleRecordID(record.ID),
				Detail:   err.Error(),
			})
			continue
		}

		if record.TotalAmount.IsNegative() {
			result.Quality.add(domain.DataQualityError{
				Kind:     domain.IssueNegativeAmount,
				RecordID: saleRecordID(record.ID),
				Detail:   record.TotalAmount.String(),
			})
			continue
		}

		if inPeriod(at) {
			result.Sales = append(result.Sales, DatedSale{SaleRecord: record, At: at})
		}
	}

	return result, nil
}

// FilterDated aplica a janela a vendas já interpretadas
func FilterDated(sales []DatedSale, spec domain.PeriodSpec, now Clock) ([]DatedSale, error) {
	inPeriod, err := periodMatcher(spec, now())
	if err != nil {
		return nil, err
	}

	kept := make([]DatedSale, 0, len(sales))
	for _, sale := range sales {
		if inPeriod(sale.At) {
			kept = append(kept, sale)
		}
	}
	return kept, nil
}

func periodMatcher(spec domain.PeriodSpec, now time.Time) (func(time.Time) bool, error) {
	switch spec.Kind {
	case domain.PeriodAll, "":
		return func(time.Time) bool { return true }, nil

	case domain.PeriodWeek:
		weekAgo := now.AddDate(0, 0, -7)
		return func(at time.Time) bool { return !at.Before(weekAgo) }, nil

	case domain.PeriodMonth:
		return func(at time.Time) bool {
			at = at.In(now.Location())
			return at.Year() == now.Year() && at.Month() == now.Month()
		}, nil

	case domain.PeriodYear:
		return func(at time.Time) bool {
			return at.In(now.Location()).Year() == now.Year()
		}, nil

	case domain.PeriodCustom:
		if spec.Start.IsZero() || spec.End.IsZero() || spec.End.Before(spec.Start) {
			return nil, domain.ErrInvalidPeriod
		}
		window := domain.TimeRange{From: spec.Start, To: spec.End}
		return window.Contains, nil
	}

	return nil, domain.ErrInvalidPeriod
}

// WithoutCancelled remove as vendas canceladas
func WithoutCancelled(sales []DatedSale) []DatedSale {
	kept := make([]DatedSale, 0, len(sales))
	for _, sale := range sales {
		if sale.Status != domain.SaleStatusCancelled {
			kept = append(kept, sale)
		}
	}
	return kept
}

// SaleRevenue é o extrator de valor padrão: o total da venda
func SaleRevenue(sale DatedSale) decimal.Decimal {
	return sale.TotalAmount
}

// SaleCount conta uma unidade por venda
func SaleCount(DatedSale) decimal.Decimal {
	return decimal.NewFromInt(1)
}

// InRange retorna as vendas contidas em r
func InRange(sales []DatedSale, r domain.TimeRange) []DatedSale {
	kept := make([]DatedSale, 0, len(sales))
	for _, sale := range sales {
		if r.Contains(sale.At) {
			kept = append(kept, sale)
		}
	}
	return kept
}
