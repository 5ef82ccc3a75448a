// Package scheduler contém os serviços agendados da API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type StockAlertsConfig struct {
	CronSchedule string
	Enabled      bool
	Threshold    int
}

// StockAlertDigest é o resultado de uma execução do alerta de estoque baixo
type StockAlertDigest struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Threshold   int              `json:"threshold"`
	Products    []domain.Product `json:"products"`
}

// StockAlertService verifica periodicamente os produtos com estoque abaixo do limite configurado
type StockAlertService struct {
	scheduler           *gocron.Scheduler
	provider            dashboarding.DataProvider
	config              StockAlertsConfig
	now                 analytics.Clock
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastDigest          *StockAlertDigest
}

func NewStockAlertService(
	provider dashboarding.DataProvider,
	cfg *config.Config,
	now analytics.Clock,
) *StockAlertService {
	alertsConfig := StockAlertsConfig{
		CronSchedule: cfg.StockAlerts.CronSchedule, // Default: 7h da manhã todos os dias
		Enabled:      cfg.StockAlerts.Enabled,      // Default: desabilitado
		Threshold:    cfg.Analytics.LowStockThreshold,
	}

	if now == nil {
		now = time.Now
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": alertsConfig.CronSchedule,
		"threshold":     alertsConfig.Threshold,
	}).Info("Configuração do agendador de alertas de estoque carregada")

	return &StockAlertService{
		scheduler: gocron.NewScheduler(time.Local),
		provider:  provider,
		config:    alertsConfig,
		now:       now,
	}
}

func (s *StockAlertService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de alertas de estoque desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de alertas de estoque")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunStockAlerts(ctx); err != nil {
			logrus.WithError(err).Error("Erro na verificação de estoque baixo")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar alertas de estoque: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de alertas de estoque")
		s.scheduler.Stop()
	}()

	return nil
}

// RunStockAlerts carrega o catálogo e registra os produtos com estoque abaixo do limite.
// Retorna nil sem erro quando já existe uma execução em andamento.
func (s *StockAlertService) RunStockAlerts(ctx context.Context) (*StockAlertDigest, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Verificação de estoque já está em execução")
		return nil, nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, err
	}

	logger := logrus.WithField("run_id", runID)
	logger.Info("Iniciando verificação de estoque baixo")

	products, err := s.provider.GetProducts(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar produtos para verificação de estoque")
		return nil, &domain.UpstreamFetchError{Collection: dashboarding.CollectionProducts, Err: err}
	}

	digest := &StockAlertDigest{
		RunID:       runID,
		GeneratedAt: s.now(),
		Threshold:   s.config.Threshold,
		Products:    analytics.LowStockProducts(products, s.config.Threshold),
	}

	for _, product := range digest.Products {
		logger.WithFields(logrus.Fields{
			"product_id": product.ID,
			"title":      product.Title,
			"stock":      product.Stock,
		}).Warn("Produto com estoque baixo")
	}

	logger.WithFields(logrus.Fields{
		"products":  len(products),
		"low_stock": len(digest.Products),
	}).Info("Verificação de estoque baixo concluída")

	s.syncMutex.Lock()
	s.lastDigest = digest
	s.syncMutex.Unlock()

	return digest, nil
}

// TriggerManualSync inicia manualmente uma verificação de estoque.
// Retorna false quando já existe uma verificação em andamento.
func (s *StockAlertService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Verificação de estoque já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando verificação manual de estoque")
	go func() {
		if _, err := s.RunStockAlerts(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na verificação manual de estoque")
		}
	}()

	return true
}

// LastDigest retorna o resumo da última verificação concluída, ou nil
func (s *StockAlertService) LastDigest() *StockAlertDigest {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.lastDigest
}

func (s *StockAlertService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"threshold":              s.config.Threshold,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastDigest != nil {
		status["last_run_id"] = s.lastDigest.RunID
		status["low_stock_count"] = len(s.lastDigest.Products)
	}

	return status
}
