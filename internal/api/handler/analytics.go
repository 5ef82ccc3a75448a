package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
)

const (
	metricRevenue = "revenue"
	metricCount   = "count"
)

// GetSeries retorna a série diária de receita com média móvel e estatísticas
func GetSeries(service dashboarding.Dashboarder, opts analytics.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = withForwardedToken(r)

		period, err := parsePeriod(r, opts.Location)
		if err != nil {
			writeError(w, r, err)
			return
		}

		report, err := service.GetSeries(r.Context(), period)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

// GetRanking retorna o top-N da dimensão informada na rota
func GetRanking(service dashboarding.Dashboarder, opts analytics.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = withForwardedToken(r)

		dimension, ok := analytics.ParseDimension(httprouter.ParamsFromContext(r.Context()).ByName("dimension"))
		if !ok {
			writeError(w, r, invalidParam("Dimensão inválida. Valores aceitos: products, sellers, categories"))
			return
		}

		period, err := parsePeriod(r, opts.Location)
		if err != nil {
			writeError(w, r, err)
			return
		}

		n, err := parseOptionalInt(r, "n", opts.TopN)
		if err != nil {
			writeError(w, r, err)
			return
		}

		entries, err := service.GetRanking(r.Context(), period, dimension, n)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"dimension": dimension,
			"ranking":   entries,
		})
	}
}

// GetComparison compara o período atual com o anterior por receita ou número de vendas
func GetComparison(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = withForwardedToken(r)
		query := r.URL.Query()

		kind, ok := domain.ParseWindowKind(query.Get("window"))
		if !ok {
			writeError(w, r, invalidParam("Janela inválida. Valores aceitos: WEEK, MONTH"))
			return
		}

		metric := strings.ToLower(strings.TrimSpace(query.Get("metric")))
		if metric == "" {
			metric = metricRevenue
		}
		if metric != metricRevenue && metric != metricCount {
			writeError(w, r, invalidParam("Métrica inválida. Valores aceitos: revenue, count"))
			return
		}

		result, err := service.GetComparison(r.Context(), kind, metric == metricCount)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"window":     kind,
			"metric":     metric,
			"comparison": result,
		})
	}
}
