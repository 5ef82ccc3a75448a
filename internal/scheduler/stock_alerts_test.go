package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding/mocks"
	"go.uber.org/mock/gomock"
)

func newTestConfig(threshold int, enabled bool) *config.Config {
	return &config.Config{
		StockAlerts: config.StockAlerts{CronSchedule: "0 7 * * *", Enabled: enabled},
		Analytics:   config.Analytics{LowStockThreshold: threshold},
	}
}

func TestStockAlertService_RunStockAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockDataProvider(ctrl)
	executionDate := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		threshold int
		setup     func()
		validate  func(t *testing.T, digest *StockAlertDigest, err error)
	}{
		{
			name:      "Produtos abaixo do limite entram no resumo na ordem do catálogo",
			threshold: 10,
			setup: func() {
				provider.EXPECT().GetProducts(gomock.Any()).Return([]domain.Product{
					{ID: 1, Title: "Teclado", Stock: 3},
					{ID: 2, Title: "Monitor", Stock: 10},
					{ID: 3, Title: "Cabo", Stock: 0},
					{ID: 4, Title: "Mouse", Stock: 25},
				}, nil)
			},
			validate: func(t *testing.T, digest *StockAlertDigest, err error) {
				require.NoError(t, err)
				require.NotNil(t, digest)
				assert.Len(t, digest.RunID, 8)
				assert.Equal(t, executionDate, digest.GeneratedAt)
				assert.Equal(t, 10, digest.Threshold)
				require.Len(t, digest.Products, 2)
				assert.Equal(t, "Teclado", digest.Products[0].Title)
				assert.Equal(t, "Cabo", digest.Products[1].Title)
			},
		},
		{
			name:      "Catálogo sem estoque baixo gera resumo vazio",
			threshold: 5,
			setup: func() {
				provider.EXPECT().GetProducts(gomock.Any()).Return([]domain.Product{
					{ID: 1, Title: "Teclado", Stock: 5},
				}, nil)
			},
			validate: func(t *testing.T, digest *StockAlertDigest, err error) {
				require.NoError(t, err)
				assert.Empty(t, digest.Products)
			},
		},
		{
			name:      "Falha na origem retorna erro de carga",
			threshold: 10,
			setup: func() {
				provider.EXPECT().GetProducts(gomock.Any()).Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, digest *StockAlertDigest, err error) {
				assert.Nil(t, digest)
				var upstream *domain.UpstreamFetchError
				require.True(t, errors.As(err, &upstream))
				assert.Equal(t, "products", upstream.Collection)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			service := NewStockAlertService(provider, newTestConfig(tt.threshold, false), analytics.FixedClock(executionDate))
			digest, err := service.RunStockAlerts(context.Background())
			tt.validate(t, digest, err)
		})
	}
}

func TestStockAlertService_SkipsWhenRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockDataProvider(ctrl)
	service := NewStockAlertService(provider, newTestConfig(10, false), nil)
	service.syncRunning = true

	digest, err := service.RunStockAlerts(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, digest)
	assert.False(t, service.TriggerManualSync())
}

func TestStockAlertService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockDataProvider(ctrl)
	provider.EXPECT().GetProducts(gomock.Any()).Return([]domain.Product{{ID: 1, Title: "Teclado", Stock: 1}}, nil)

	executionDate := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)
	service := NewStockAlertService(provider, newTestConfig(10, true), analytics.FixedClock(executionDate))

	status := service.GetStatus()
	assert.Equal(t, true, status["sync_enabled"])
	assert.NotContains(t, status, "last_run_id")
	assert.Nil(t, service.LastDigest())

	digest, err := service.RunStockAlerts(context.Background())
	require.NoError(t, err)
	assert.Same(t, digest, service.LastDigest())

	status = service.GetStatus()
	assert.Equal(t, digest.RunID, status["last_run_id"])
	assert.Equal(t, 1, status["low_stock_count"])
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, executionDate, status["last_sync_completed_at"])
}

func TestStockAlertService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewStockAlertService(mocks.NewMockDataProvider(ctrl), newTestConfig(10, false), nil)

	assert.NoError(t, service.Start(context.Background()))
}
