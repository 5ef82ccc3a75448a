// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "github.com/shopspring/decimal"

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// SaleRecord representa uma venda como entregue pela API de origem.
// A data chega como texto e só é interpretada pelo filtro de período.
type SaleRecord struct {
	ID             int64           `json:"id"`
	SaleDate       string          `json:"saleDate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         SaleStatus      `json:"status"`
	SellerID       int64           `json:"userId"`
	SellerUsername string          `json:"username"`
	ClientName     string          `json:"clientName,omitempty"`
	Lines          []SaleLine      `json:"lignes"`
}

// SaleLine é um item de venda. LineTotal deve ser Quantity * UnitPrice.
type SaleLine struct {
	ProductID    int64           `json:"productId"`
	ProductTitle string          `json:"productTitle"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// LineTotalTolerance é a diferença máxima aceita entre LineTotal e Quantity * UnitPrice
var LineTotalTolerance = decimal.New(1, -6)

// ExpectedTotal retorna Quantity * UnitPrice
func (l SaleLine) ExpectedTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
