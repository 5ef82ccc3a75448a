package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Dashboards(service dashboarding.Dashboarder, opts analytics.Options) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboards/:role",
			Method:  http.MethodGet,
			Handler: GetDashboard(service, opts.Location),
		},
	}
}

func Analytics(service dashboarding.Dashboarder, opts analytics.Options) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/series",
			Method:  http.MethodGet,
			Handler: GetSeries(service, opts),
		},
		{
			Path:    "/v1/analytics/rankings/:dimension",
			Method:  http.MethodGet,
			Handler: GetRanking(service, opts),
		},
		{
			Path:    "/v1/analytics/comparison",
			Method:  http.MethodGet,
			Handler: GetComparison(service),
		},
	}
}

func SellerRanking(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sellers/ranking",
			Method:  http.MethodGet,
			Handler: GetSellerRanking(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
		{
			Path:    "/v1/stock-alerts/latest",
			Method:  http.MethodGet,
			Handler: GetLatestStockAlerts(services),
		},
	}
}
