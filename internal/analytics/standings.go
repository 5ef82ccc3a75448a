package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// SellerRevenue soma a receita das vendas de cada vendedor com papel VENDEUR.
// Vendedores sem vendas entram com zero; vendas de quem não é VENDEUR são ignoradas.
func SellerRevenue(sales []DatedSale, users []domain.Seller) *Aggregation[string] {
	agg := NewAggregation[string]()
	sellers := make(map[string]struct{}, len(users))
	for _, user := range users {
		if user.Role != domain.UserRoleSeller {
			continue
		}
		sellers[user.Username] = struct{}{}
		agg.Add(user.Username, decimal.Zero)
	}

	for _, sale := range sales {
		if _, ok := sellers[sale.SellerUsername]; ok {
			agg.Add(sale.SellerUsername, sale.TotalAmount)
		}
	}

	return agg
}

// SellerLabeler rotula usernames pelo nome de exibição cadastrado
func SellerLabeler(users []domain.Seller) Labeler {
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.Username] = user.DisplayName()
	}
	return func(key string) string { return names[key] }
}

// SellerStandings classifica os vendedores pela receita e calcula a variação de posição
// em relação à classificação anterior (posição anterior - posição atual).
func SellerStandings(current, previous []DatedSale, users []domain.Seller) []domain.SellerStanding {
	labeler := SellerLabeler(users)
	ranking := Rank(SellerRevenue(current, users), labeler)
	previousRanking := Rank(SellerRevenue(previous, users), labeler)

	counts := make(map[string]int)
	for _, sale := range current {
		counts[sale.SellerUsername]++
	}

	standings := make([]domain.SellerStanding, len(ranking))
	for i, entry := range ranking {
		standing := domain.SellerStanding{
			Username:   entry.Key,
			Name:       entry.Label,
			Revenue:    entry.Value,
			SalesCount: counts[entry.Key],
			Position:   entry.Rank,
		}

		if before := PositionOf(previousRanking, entry.Key); before > 0 && len(previous) > 0 {
			standing.PreviousPosition = before
			standing.PositionChange = before - entry.Rank
		}

		standings[i] = standing
	}

	return standings
}
