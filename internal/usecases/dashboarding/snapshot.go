package dashboarding

import (
	"context"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Nomes das coleções usados nos erros de carga
const (
	CollectionSales      = "sales"
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionUsers      = "users"
)

// LoadSnapshot carrega as quatro coleções em paralelo.
// A primeira falha cancela as demais e é devolvida como *domain.UpstreamFetchError.
func LoadSnapshot(ctx context.Context, provider DataProvider) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, g, CollectionSales, provider.GetSales, &snapshot.Sales)
	fetch(gctx, g, CollectionProducts, provider.GetProducts, &snapshot.Products)
	fetch(gctx, g, CollectionCategories, provider.GetCategories, &snapshot.Categories)
	fetch(gctx, g, CollectionUsers, provider.GetUsers, &snapshot.Users)

	if err := g.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).WithField("duration_ms", time.Since(start).Milliseconds()).
			Debug("Falha ao carregar dados da origem")
		return domain.Snapshot{}, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"sales":       len(snapshot.Sales),
		"products":    len(snapshot.Products),
		"categories":  len(snapshot.Categories),
		"users":       len(snapshot.Users),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Dados da origem carregados")

	return snapshot, nil
}

func fetch[T any](ctx context.Context, g *errgroup.Group, collection string, load func(context.Context) ([]T, error), dst *[]T) {
	g.Go(func() error {
		items, err := load(ctx)
		if err != nil {
			return &domain.UpstreamFetchError{Collection: collection, Err: err}
		}
		*dst = items
		return nil
	})
}
