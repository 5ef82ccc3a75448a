package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestCatalog_Attribute(t *testing.T) {
	catalog := NewCatalog(
		[]domain.Product{
			{ID: 1, Title: "Teclado", CategoryID: 10},
			{ID: 2, Title: "Monitor", CategoryID: 99},
		},
		[]domain.Category{{ID: 10, Name: "Periféricos"}},
	)

	tests := []struct {
		name         string
		line         domain.SaleLine
		expectedName string
		expectedKind domain.IssueKind
	}{
		{
			name:         "produto e categoria existentes",
			line:         newLine(1, "Teclado", 1, "100"),
			expectedName: "Periféricos",
		},
		{
			name:         "categoria removida vai para Uncategorized",
			line:         newLine(2, "Monitor", 1, "900"),
			expectedName: UncategorizedLabel,
			expectedKind: domain.IssueDanglingCategory,
		},
		{
			name:         "produto removido vai para Uncategorized",
			line:         newLine(3, "Mouse", 1, "50"),
			expectedName: UncategorizedLabel,
			expectedKind: domain.IssueDanglingProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attribution := catalog.Attribute(tt.line)

			assert.Equal(t, tt.expectedName, attribution.CategoryName)
			if tt.expectedKind == "" {
				assert.Nil(t, attribution.Issue)
				return
			}
			require.NotNil(t, attribution.Issue)
			assert.Equal(t, tt.expectedKind, attribution.Issue.Kind)
		})
	}
}

func TestValidateLine(t *testing.T) {
	tests := []struct {
		name         string
		line         domain.SaleLine
		expectedKind domain.IssueKind
	}{
		{
			name: "item válido",
			line: newLine(1, "Teclado", 2, "10.50"),
		},
		{
			name: "diferença dentro da tolerância",
			line: domain.SaleLine{ProductID: 1, Quantity: 1, UnitPrice: dec("10"), LineTotal: dec("10.0000001")},
		},
		{
			name:         "quantidade negativa",
			line:         domain.SaleLine{ProductID: 1, Quantity: -1, UnitPrice: dec("10"), LineTotal: dec("0")},
			expectedKind: domain.IssueNegativeQuantity,
		},
		{
			name:         "quantidade zero",
			line:         domain.SaleLine{ProductID: 1, Quantity: 0, UnitPrice: dec("10"), LineTotal: dec("0")},
			expectedKind: domain.IssueZeroQuantity,
		},
		{
			name:         "preço negativo",
			line:         domain.SaleLine{ProductID: 1, Quantity: 1, UnitPrice: dec("-10"), LineTotal: dec("0")},
			expectedKind: domain.IssueNegativePrice,
		},
		{
			name:         "total divergente",
			line:         domain.SaleLine{ProductID: 1, Quantity: 2, UnitPrice: dec("10"), LineTotal: dec("25")},
			expectedKind: domain.IssueLineTotalMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := ValidateLine(7, 0, tt.line)
			if tt.expectedKind == "" {
				assert.Nil(t, issue)
				return
			}
			require.NotNil(t, issue)
			assert.Equal(t, tt.expectedKind, issue.Kind)
			assert.Equal(t, "7#0", issue.RecordID)
		})
	}
}

func TestCatalog_ResolveLines_CategoryTotalsMatchLineTotals(t *testing.T) {
	catalog := NewCatalog(
		[]domain.Product{
			{ID: 1, Title: "Teclado", CategoryID: 10},
			{ID: 2, Title: "Monitor", CategoryID: 404},
			{ID: 3, Title: "Cabo", CategoryID: 20},
		},
		[]domain.Category{{ID: 10, Name: "Periféricos"}, {ID: 20, Name: "Acessórios"}},
	)

	sales := []DatedSale{
		dated(1, day(2024, 3, 1), "1130", "ana",
			newLine(1, "Teclado", 2, "100"),
			newLine(2, "Monitor", 1, "900"),
			newLine(3, "Cabo", 3, "10"),
		),
		dated(2, day(2024, 3, 2), "50", "bruno",
			newLine(9, "Mouse", 1, "50"),
			domain.SaleLine{ProductID: 1, Quantity: -2, UnitPrice: dec("100"), LineTotal: dec("-200")},
		),
	}

	lines, report := catalog.ResolveLines(sales)

	require.Len(t, lines, 4)
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, 2, report.Reattributed())

	lineTotal := decimal.Zero
	for _, line := range lines {
		lineTotal = lineTotal.Add(line.Line.LineTotal)
	}

	categories := Aggregate(lines, categoryKey, AttributedLine.Revenue)
	categoryTotal := decimal.Zero
	for _, entry := range Rank(categories, nil) {
		categoryTotal = categoryTotal.Add(entry.Value)
	}

	assert.True(t, lineTotal.Equal(categoryTotal))

	uncategorized, ok := categories.Get(UncategorizedLabel)
	require.True(t, ok)
	assert.Equal(t, "950", uncategorized.String())
}

func TestLowStockProducts(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Title: "A", Stock: 0},
		{ID: 2, Title: "B", Stock: 10},
		{ID: 3, Title: "C", Stock: 9},
	}

	low := LowStockProducts(products, 10)

	require.Len(t, low, 2)
	assert.Equal(t, int64(1), low[0].ID)
	assert.Equal(t, int64(3), low[1].ID)
}
