package analytics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// UncategorizedLabel agrupa itens cujo produto ou categoria não existe mais
const UncategorizedLabel = "Uncategorized"

// Catalog indexa produtos e categorias para resolver as chaves estrangeiras dos itens
type Catalog struct {
	products   map[int64]domain.Product
	categories map[int64]domain.Category
}

func NewCatalog(products []domain.Product, categories []domain.Category) *Catalog {
	catalog := &Catalog{
		products:   make(map[int64]domain.Product, len(products)),
		categories: make(map[int64]domain.Category, len(categories)),
	}
	for _, product := range products {
		catalog.products[product.ID] = product
	}
	for _, category := range categories {
		catalog.categories[category.ID] = category
	}
	return catalog
}

// Product busca um produto pelo id
func (c *Catalog) Product(id int64) (domain.Product, bool) {
	product, ok := c.products[id]
	return product, ok
}

// Attribution é o resultado da resolução item -> produto -> categoria
type Attribution struct {
	CategoryName string
	Issue        *domain.DataQualityError
}

// Attribute resolve o nome da categoria de um item.
// Produto ou categoria ausentes levam o item para UncategorizedLabel, nunca o descartam.
func (c *Catalog) Attribute(line domain.SaleLine) Attribution {
	product, ok := c.products[line.ProductID]
	if !ok {
		return Attribution{
			CategoryName: UncategorizedLabel,
			Issue: &domain.DataQualityError{
				Kind:     domain.IssueDanglingProduct,
				RecordID: strconv.FormatInt(line.ProductID, 10),
				Detail:   "produto não encontrado",
			},
		}
	}

	category, ok := c.categories[product.CategoryID]
	if !ok {
		return Attribution{
			CategoryName: UncategorizedLabel,
			Issue: &domain.DataQualityError{
				Kind:     domain.IssueDanglingCategory,
				RecordID: strconv.FormatInt(product.ID, 10),
				Detail:   fmt.Sprintf("categoria %d não encontrada", product.CategoryID),
			},
		}
	}

	return Attribution{CategoryName: category.Name}
}

// AttributedLine é um item de venda válido já associado à sua venda e categoria
type AttributedLine struct {
	SaleID         int64
	SellerUsername string
	At             time.Time
	Line           domain.SaleLine
	ProductKey     string
	ProductTitle   string
	CategoryName   string
}

// Revenue retorna o total do item, já validado contra quantidade * preço unitário
func (l AttributedLine) Revenue() decimal.Decimal {
	return l.Line.LineTotal
}

// Quantity retorna a quantidade como decimal
func (l AttributedLine) Quantity() decimal.Decimal {
	return decimal.NewFromInt(int64(l.Line.Quantity))
}

// ValidateLine verifica quantidade, preço e o total do item
func ValidateLine(saleID int64, index int, line domain.SaleLine) *domain.DataQualityError {
	recordID := lineRecordID(saleID, index)

	switch {
	case line.Quantity < 0:
		return &domain.DataQualityError{Kind: domain.IssueNegativeQuantity, RecordID: recordID, Detail: strconv.Itoa(line.Quantity)}
	case line.Quantity == 0:
		return &domain.DataQualityError{Kind: domain.IssueZeroQuantity, RecordID: recordID}
	case line.UnitPrice.IsNegative():
		return &domain.DataQualityError{Kind: domain.IssueNegativePrice, RecordID: recordID, Detail: line.UnitPrice.String()}
	case line.LineTotal.IsNegative():
		return &domain.DataQualityError{Kind: domain.IssueNegativePrice, RecordID: recordID, Detail: line.LineTotal.String()}
	}

	if line.LineTotal.Sub(line.ExpectedTotal()).Abs().GreaterThan(domain.LineTotalTolerance) {
		return &domain.DataQualityError{
			Kind:     domain.IssueLineTotalMismatch,
			RecordID: recordID,
			Detail:   fmt.Sprintf("esperado %s, recebido %s", line.ExpectedTotal(), line.LineTotal),
		}
	}

	return nil
}

// ResolveLines valida e atribui todos os itens das vendas informadas.
// Itens inválidos são excluídos; itens órfãos vão para UncategorizedLabel.
func (c *Catalog) ResolveLines(sales []DatedSale) ([]AttributedLine, QualityReport) {
	var report QualityReport
	lines := make([]AttributedLine, 0, len(sales))

	for _, sale := range sales {
		for i, line := range sale.Lines {
			if issue := ValidateLine(sale.ID, i, line); issue != nil {
				report.add(*issue)
				continue
			}

			attribution := c.Attribute(line)
			if attribution.Issue != nil {
				report.add(*attribution.Issue)
			}

			lines = append(lines, AttributedLine{
				SaleID:         sale.ID,
				SellerUsername: sale.SellerUsername,
				At:             sale.At,
				Line:           line,
				ProductKey:     strconv.FormatInt(line.ProductID, 10),
				ProductTitle:   c.productTitle(line),
				CategoryName:   attribution.CategoryName,
			})
		}
	}

	return lines, report
}

func (c *Catalog) productTitle(line domain.SaleLine) string {
	if line.ProductTitle != "" {
		return line.ProductTitle
	}
	if product, ok := c.products[line.ProductID]; ok {
		return product.Title
	}
	return strconv.FormatInt(line.ProductID, 10)
}

// ProductLabeler rotula chaves de produto pelo título encontrado nos itens
func ProductLabeler(lines []AttributedLine) Labeler {
	titles := make(map[string]string, len(lines))
	for _, line := range lines {
		if _, seen := titles[line.ProductKey]; !seen {
			titles[line.ProductKey] = line.ProductTitle
		}
	}
	return func(key string) string { return titles[key] }
}

// LowStockProducts retorna os produtos com estoque abaixo do limite, na ordem do catálogo recebido
func LowStockProducts(products []domain.Product, threshold int) []domain.Product {
	low := make([]domain.Product, 0)
	for _, product := range products {
		if product.Stock < threshold {
			low = append(low, product)
		}
	}
	return low
}
