package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

type MatrixQuadrant string

const (
	QuadrantStar         MatrixQuadrant = "STAR"
	QuadrantCashCow      MatrixQuadrant = "CASH_COW"
	QuadrantQuestionMark MatrixQuadrant = "QUESTION_MARK"
	QuadrantDog          MatrixQuadrant = "DOG"
)

// ProductPerformance é a receita e quantidade vendidas de um produto
type ProductPerformance struct {
	Key      string          `json:"key"`
	Title    string          `json:"title"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ProductMatrix classifica produtos pela receita em relação à mediana
// e pela quantidade em relação à média (matriz BCG simplificada)
type ProductMatrix map[MatrixQuadrant][]ProductPerformance

// BuildProductMatrix monta a matriz a partir dos itens atribuídos
func BuildProductMatrix(lines []AttributedLine) ProductMatrix {
	matrix := ProductMatrix{
		QuadrantStar:         {},
		QuadrantCashCow:      {},
		QuadrantQuestionMark: {},
		QuadrantDog:          {},
	}

	performances := ProductPerformances(lines)
	if len(performances) == 0 {
		return matrix
	}

	revenues := make([]decimal.Decimal, len(performances))
	totalQuantity := decimal.Zero
	for i, p := range performances {
		revenues[i] = p.Revenue
		totalQuantity = totalQuantity.Add(p.Quantity)
	}
	sort.Slice(revenues, func(i, j int) bool { return revenues[i].LessThan(revenues[j]) })
	medianRevenue := revenues[len(revenues)/2]
	meanQuantity := totalQuantity.Div(decimal.NewFromInt(int64(len(performances))))

	for _, p := range performances {
		highShare := p.Revenue.GreaterThan(medianRevenue)
		highGrowth := p.Quantity.GreaterThan(meanQuantity)

		var quadrant MatrixQuadrant
		switch {
		case highShare && highGrowth:
			quadrant = QuadrantStar
		case highShare:
			quadrant = QuadrantCashCow
		case highGrowth:
			quadrant = QuadrantQuestionMark
		default:
			quadrant = QuadrantDog
		}
		matrix[quadrant] = append(matrix[quadrant], p)
	}

	return matrix
}

// ProductPerformances soma receita e quantidade por produto, na ordem de primeira ocorrência
func ProductPerformances(lines []AttributedLine) []ProductPerformance {
	revenue := Aggregate(lines, productKey, AttributedLine.Revenue)
	quantity := Aggregate(lines, productKey, AttributedLine.Quantity)
	label := ProductLabeler(lines)

	performances := make([]ProductPerformance, 0, revenue.Len())
	revenue.Each(func(key string, value decimal.Decimal) {
		qty, _ := quantity.Get(key)
		performances = append(performances, ProductPerformance{
			Key:      key,
			Title:    label(key),
			Revenue:  value,
			Quantity: qty,
		})
	})
	return performances
}

func productKey(line AttributedLine) string {
	return line.ProductKey
}
