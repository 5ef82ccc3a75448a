package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesapi"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	opts, err := cfg.Analytics.Options()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := api.Dependencies{}

	var provider dashboarding.DataProvider
	switch cfg.App.DataSource {
	case config.DataSourcePostgres:
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		provider = repository.NewSnapshotRepository(pgConn)
		deps.Database = pgConn
	default:
		provider = salesapi.NewClient(cfg.SalesAPI)
		logrus.WithField("url", cfg.SalesAPI.URL).Info("Usando o backend de vendas como origem dos dados")
	}

	clock := func() time.Time { return time.Now().In(opts.Location) }
	engine := analytics.NewEngine(opts, clock)

	deps.Dashboards = dashboarding.NewService(provider, engine)
	deps.SellerRanking = ranking.NewSellerRankingService(provider, engine)

	stockAlertService := scheduler.NewStockAlertService(provider, cfg, clock)
	if err := stockAlertService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de alertas de estoque")
	}
	deps.StockAlerts = stockAlertService

	server, err := api.New(cfg, opts, deps)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
