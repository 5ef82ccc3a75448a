package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newLine(productID int64, title string, quantity int, unitPrice string) domain.SaleLine {
	price := dec(unitPrice)
	return domain.SaleLine{
		ProductID:    productID,
		ProductTitle: title,
		Quantity:     quantity,
		UnitPrice:    price,
		LineTotal:    price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func newSale(id int64, date string, total string, seller string, lines ...domain.SaleLine) domain.SaleRecord {
	return domain.SaleRecord{
		ID:             id,
		SaleDate:       date,
		TotalAmount:    dec(total),
		Status:         domain.SaleStatusCompleted,
		SellerUsername: seller,
		Lines:          lines,
	}
}

func dated(id int64, at time.Time, total string, seller string, lines ...domain.SaleLine) DatedSale {
	record := newSale(id, at.Format(time.RFC3339), total, seller, lines...)
	return DatedSale{SaleRecord: record, At: at}
}

func aggregationOf(pairs ...any) *Aggregation[string] {
	agg := NewAggregation[string]()
	for i := 0; i < len(pairs); i += 2 {
		agg.Add(pairs[i].(string), dec(pairs[i+1].(string)))
	}
	return agg
}

func keysOf(entries []domain.RankingEntry) []string {
	keys := make([]string, len(entries))
	for i, entry := range entries {
		keys[i] = entry.Key
	}
	return keys
}
