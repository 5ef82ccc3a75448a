package dashboarding

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// Service carrega os dados da origem a cada chamada e delega o cálculo ao motor de análise
type Service struct {
	provider DataProvider
	engine   *analytics.Engine
}

// NewService cria uma nova instância do serviço de dashboards
func NewService(provider DataProvider, engine *analytics.Engine) Dashboarder {
	return &Service{
		provider: provider,
		engine:   engine,
	}
}

// GetDashboard monta o conjunto de KPIs da visão pedida
func (s *Service) GetDashboard(ctx context.Context, view domain.View) (*analytics.Dashboard, error) {
	snapshot, err := LoadSnapshot(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	dashboard, err := s.engine.Run(snapshot, view)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warnf("Erro ao calcular dashboard %s", view.Role)
		return nil, err
	}

	s.logQuality(ctx, "dashboard", analytics.QualityReport{Issues: dashboard.Issues})

	return dashboard, nil
}

// GetSeries retorna a série diária de receita do período com as estatísticas
func (s *Service) GetSeries(ctx context.Context, period domain.PeriodSpec) (*analytics.SeriesReport, error) {
	snapshot, err := LoadSnapshot(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	report, quality, err := s.engine.Series(snapshot, period)
	if err != nil {
		return nil, err
	}

	s.logQuality(ctx, "series", quality)

	return &report, nil
}

// GetRanking retorna o top-N de uma dimensão no período
func (s *Service) GetRanking(ctx context.Context, period domain.PeriodSpec, dimension analytics.Dimension, n int) ([]domain.RankingEntry, error) {
	snapshot, err := LoadSnapshot(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	entries, quality, err := s.engine.Ranking(snapshot, period, dimension, n)
	if err != nil {
		return nil, err
	}

	s.logQuality(ctx, "ranking", quality)

	return entries, nil
}

// GetComparison compara o período atual com o anterior
func (s *Service) GetComparison(ctx context.Context, kind domain.WindowKind, countSales bool) (*domain.ComparisonResult, error) {
	snapshot, err := LoadSnapshot(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	result, quality, err := s.engine.Comparison(snapshot, kind, countSales)
	if err != nil {
		return nil, err
	}

	s.logQuality(ctx, "comparison", quality)

	return &result, nil
}

func (s *Service) logQuality(ctx context.Context, operation string, report analytics.QualityReport) {
	if len(report.Issues) == 0 {
		return
	}

	logger := log.ForContext(ctx)
	for _, issue := range report.Issues {
		logger.WithField("issue", issue.Kind).Debug(issue.Error())
	}

	summary := report.Summary()
	logger.WithFields(log.Fields{
		"operation":    operation,
		"skipped":      summary.Skipped,
		"reattributed": summary.Reattributed,
	}).Warnf("%d registros ignorados e %d itens reatribuídos por problemas de qualidade", summary.Skipped, summary.Reattributed)
}
