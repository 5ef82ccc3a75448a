package analytics

import (
	"strconv"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// QualityReport acumula os problemas de qualidade de dados encontrados em um cálculo
type QualityReport struct {
	Issues []domain.DataQualityError
}

// QualitySummary é a forma exposta ao chamador
type QualitySummary struct {
	Skipped      int                      `json:"skipped"`
	Reattributed int                      `json:"reattributed"`
	ByKind       map[domain.IssueKind]int `json:"byKind"`
}

func (q *QualityReport) add(issue domain.DataQualityError) {
	q.Issues = append(q.Issues, issue)
}

// Merge anexa os problemas de outro relatório
func (q *QualityReport) Merge(other QualityReport) {
	q.Issues = append(q.Issues, other.Issues...)
}

// Skipped retorna quantos registros foram excluídos do cálculo
func (q QualityReport) Skipped() int {
	skipped := 0
	for _, issue := range q.Issues {
		if !isReattribution(issue.Kind) {
			skipped++
		}
	}
	return skipped
}

// Reattributed retorna quantos itens foram enviados para "Uncategorized"
func (q QualityReport) Reattributed() int {
	return len(q.Issues) - q.Skipped()
}

// CountByKind conta os problemas por tipo
func (q QualityReport) CountByKind() map[domain.IssueKind]int {
	counts := make(map[domain.IssueKind]int)
	for _, issue := range q.Issues {
		counts[issue.Kind]++
	}
	return counts
}

func (q QualityReport) Summary() QualitySummary {
	return QualitySummary{
		Skipped:      q.Skipped(),
		Reattributed: q.Reattributed(),
		ByKind:       q.CountByKind(),
	}
}

func isReattribution(kind domain.IssueKind) bool {
	return kind == domain.IssueDanglingProduct || kind == domain.IssueDanglingCategory
}

func saleRecordID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func lineRecordID(saleID int64, index int) string {
	return saleRecordID(saleID) + "#" + strconv.Itoa(index)
}
