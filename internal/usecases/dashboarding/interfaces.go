package dashboarding

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// DataProvider carrega as coleções de origem usadas pelos dashboards
type DataProvider interface {
	GetSales(ctx context.Context) ([]domain.SaleRecord, error)
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetUsers(ctx context.Context) ([]domain.Seller, error)
}

// Dashboarder expõe os cálculos do motor de análise sobre os dados atuais da origem
type Dashboarder interface {
	// GetDashboard monta o conjunto de KPIs da visão pedida
	GetDashboard(ctx context.Context, view domain.View) (*analytics.Dashboard, error)

	// GetSeries retorna a série diária de receita do período com as estatísticas
	GetSeries(ctx context.Context, period domain.PeriodSpec) (*analytics.SeriesReport, error)

	// GetRanking retorna o top-N de uma dimensão no período
	GetRanking(ctx context.Context, period domain.PeriodSpec, dimension analytics.Dimension, n int) ([]domain.RankingEntry, error)

	// GetComparison compara o período atual com o anterior
	GetComparison(ctx context.Context, kind domain.WindowKind, countSales bool) (*domain.ComparisonResult, error)
}
