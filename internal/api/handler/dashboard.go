package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
)

// GetDashboard monta o dashboard do perfil informado na rota
func GetDashboard(service dashboarding.Dashboarder, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = withForwardedToken(r)

		role, ok := domain.ParseRole(httprouter.ParamsFromContext(r.Context()).ByName("role"))
		if !ok {
			writeError(w, r, invalidParam("Perfil inválido. Valores aceitos: OPERATOR, SELLER, ANALYST, INVESTOR"))
			return
		}

		period, err := parsePeriod(r, loc)
		if err != nil {
			writeError(w, r, err)
			return
		}

		topN, err := parseOptionalInt(r, "top", 0)
		if err != nil {
			writeError(w, r, err)
			return
		}

		view := domain.View{
			Role:           role,
			Period:         period,
			SellerUsername: strings.TrimSpace(r.URL.Query().Get("seller")),
			TopN:           topN,
		}

		if view.Role == domain.RoleSeller && view.SellerUsername == "" {
			writeError(w, r, missingParam("Visão SELLER exige o parâmetro seller"))
			return
		}

		dashboard, err := service.GetDashboard(r.Context(), view)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	}
}
