package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Labeler traduz a chave de uma agregação no rótulo exibido. Rótulo vazio mantém a chave.
type Labeler func(key string) string

// TopN retorna as n maiores entradas usando a própria chave como rótulo
func TopN(agg *Aggregation[string], n int) ([]domain.RankingEntry, error) {
	return TopNLabeled(agg, n, nil)
}

// TopNLabeled retorna as n maiores entradas em ordem decrescente de valor.
// Empates são resolvidos pelo rótulo em ordem crescente e, depois, pela chave.
func TopNLabeled(agg *Aggregation[string], n int, labeler Labeler) ([]domain.RankingEntry, error) {
	if n < 0 {
		return nil, domain.ErrNegativeTopN
	}
	if n == 0 {
		return []domain.RankingEntry{}, nil
	}

	entries := Rank(agg, labeler)
	if n < len(entries) {
		entries = entries[:n]
	}

	return entries, nil
}

// Rank retorna a classificação completa com posições a partir de 1
func Rank(agg *Aggregation[string], labeler Labeler) []domain.RankingEntry {
	entries := make([]domain.RankingEntry, 0, agg.Len())
	agg.Each(func(key string, value decimal.Decimal) {
		label := key
		if labeler != nil {
			if resolved := labeler(key); resolved != "" {
				label = resolved
			}
		}
		entries = append(entries, domain.RankingEntry{Key: key, Label: label, Value: value})
	})

	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].Value.Cmp(entries[j].Value); cmp != 0 {
			return cmp > 0
		}
		if entries[i].Label != entries[j].Label {
			return entries[i].Label < entries[j].Label
		}
		return entries[i].Key < entries[j].Key
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

// PositionOf retorna a posição de key na classificação, ou 0 se ausente
func PositionOf(entries []domain.RankingEntry, key string) int {
	for _, entry := range entries {
		if entry.Key == key {
			return entry.Rank
		}
	}
	return 0
}
