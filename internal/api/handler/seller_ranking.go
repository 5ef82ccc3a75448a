package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
)

// GetSellerRanking retorna o ranking mensal de vendedores por receita
func GetSellerRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = withForwardedToken(r)

		seller := strings.TrimSpace(r.URL.Query().Get("seller"))

		result, err := service.GetSellerRanking(r.Context(), seller)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}
