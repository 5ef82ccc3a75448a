package ranking

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type RankingService interface {
	GetSellerRanking(ctx context.Context, username string) (*domain.SellerRankingResponse, error)
}

type SellerRankingService struct {
	provider dashboarding.DataProvider
	engine   *analytics.Engine
}

func NewSellerRankingService(provider dashboarding.DataProvider, engine *analytics.Engine) RankingService {
	return &SellerRankingService{
		provider: provider,
		engine:   engine,
	}
}

// GetSellerRanking classifica os vendedores pela receita do mês corrente e compara com o mês anterior.
// Quando username é informado, MyPosition traz a posição desse vendedor.
func (s *SellerRankingService) GetSellerRanking(ctx context.Context, username string) (*domain.SellerRankingResponse, error) {
	snapshot, err := dashboarding.LoadSnapshot(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	computation, quality, err := s.engine.Prepare(snapshot, domain.PeriodSpec{Kind: domain.PeriodAll})
	if err != nil {
		return nil, err
	}

	if skipped := quality.Skipped(); skipped > 0 {
		log.ForContext(ctx).Warnf("Ranking de vendedores calculado ignorando %d registros inválidos", skipped)
	}

	currentMonth, previousMonth, err := analytics.ComparisonWindows(domain.WindowMonth, computation.Now, s.engine.Options().FirstDayOfWeek)
	if err != nil {
		return nil, err
	}

	standings := analytics.SellerStandings(
		analytics.InRange(computation.AllSales, currentMonth),
		analytics.InRange(computation.AllSales, previousMonth),
		computation.Users,
	)

	response := &domain.SellerRankingResponse{
		Month:      computation.Now.Format("01-2006"),
		Ranking:    standings,
		LastUpdate: computation.Now,
	}

	for _, standing := range standings {
		if username != "" && standing.Username == username {
			response.MyPosition = standing.Position
			break
		}
	}

	return response, nil
}
