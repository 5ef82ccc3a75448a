package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesapi"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	dashmocks "github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding/mocks"
	rankmocks "github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking/mocks"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func testOptions() analytics.Options {
	opts := analytics.DefaultOptions()
	opts.Location = time.UTC
	opts.TopN = 5
	return opts
}

func serve(routes []router.Route, method, target string, header http.Header) *httptest.ResponseRecorder {
	rt := router.New(router.WithRoutes(routes...))

	req := httptest.NewRequest(method, target, nil)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetDashboard(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := dashmocks.NewMockDashboarder(ctrl)
	routes := Dashboards(service, testOptions())

	tests := []struct {
		name     string
		target   string
		header   http.Header
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Visão OPERATOR do mês",
			target: "/v1/dashboards/operator?period=month",
			setup: func() {
				service.EXPECT().
					GetDashboard(gomock.Any(), domain.View{Role: domain.RoleOperator, Period: domain.PeriodSpec{Kind: domain.PeriodMonth}}).
					Return(&analytics.Dashboard{Kpis: domain.KpiSet{"totalRevenue": decimal.NewFromInt(1400)}}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), `"totalRevenue":"1400"`)
			},
		},
		{
			name:   "Período CUSTOM usa datas inclusivas",
			target: "/v1/dashboards/ANALYST?period=CUSTOM&start=2024-03-01&end=2024-03-10&top=3",
			setup: func() {
				expected := domain.View{
					Role: domain.RoleAnalyst,
					Period: domain.PeriodSpec{
						Kind:  domain.PeriodCustom,
						Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
						End:   time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC),
					},
					TopN: 3,
				}
				service.EXPECT().GetDashboard(gomock.Any(), expected).Return(&analytics.Dashboard{}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:   "Token do cliente é repassado para a origem",
			target: "/v1/dashboards/INVESTOR",
			header: http.Header{"Authorization": []string{"Bearer token-do-usuario"}},
			setup: func() {
				service.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, view domain.View) (*analytics.Dashboard, error) {
						token, ok := salesapi.TokenFromContext(ctx)
						assert.True(t, ok)
						assert.Equal(t, "token-do-usuario", token)
						assert.Equal(t, domain.PeriodAll, view.Period.Kind)
						return &analytics.Dashboard{}, nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:   "Perfil desconhecido",
			target: "/v1/dashboards/GERENTE",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Visão SELLER sem vendedor",
			target: "/v1/dashboards/SELLER?period=WEEK",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Período CUSTOM sem data final",
			target: "/v1/dashboards/OPERATOR?period=CUSTOM&start=2024-03-01",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Data em formato inválido",
			target: "/v1/dashboards/OPERATOR?period=CUSTOM&start=01/03/2024&end=2024-03-10",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Falha na origem responde 502",
			target: "/v1/dashboards/OPERATOR",
			setup: func() {
				service.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).
					Return(nil, &domain.UpstreamFetchError{Collection: "sales", Err: assert.AnError})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadGateway, rec.Code)
				body := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrExternalService, body.Code)
				assert.Equal(t, map[string]interface{}{"collection": "sales"}, body.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			tt.validate(t, serve(routes, http.MethodGet, tt.target, tt.header))
		})
	}
}

func TestAnalyticsHandlers(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := dashmocks.NewMockDashboarder(ctrl)
	routes := Analytics(service, testOptions())
	change := 25.0

	tests := []struct {
		name     string
		target   string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Série do ano",
			target: "/v1/analytics/series?period=YEAR",
			setup: func() {
				service.EXPECT().GetSeries(gomock.Any(), domain.PeriodSpec{Kind: domain.PeriodYear}).
					Return(&analytics.SeriesReport{Series: []domain.DailyRevenuePoint{}}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"series":[]`)
			},
		},
		{
			name:   "Série vazia responde 422",
			target: "/v1/analytics/series",
			setup: func() {
				service.EXPECT().GetSeries(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEmptySeries)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				assert.Equal(t, apiErrors.ErrEmptySeries, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Ranking usa o top-N configurado quando n não é informado",
			target: "/v1/analytics/rankings/Products?period=MONTH",
			setup: func() {
				service.EXPECT().
					GetRanking(gomock.Any(), domain.PeriodSpec{Kind: domain.PeriodMonth}, analytics.DimensionProducts, 5).
					Return([]domain.RankingEntry{{Key: "1", Label: "Teclado", Value: decimal.NewFromInt(4), Rank: 1}}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"dimension":"products"`)
				assert.Contains(t, rec.Body.String(), `"label":"Teclado"`)
			},
		},
		{
			name:   "Ranking com n explícito",
			target: "/v1/analytics/rankings/sellers?n=2",
			setup: func() {
				service.EXPECT().
					GetRanking(gomock.Any(), domain.PeriodSpec{Kind: domain.PeriodAll}, analytics.DimensionSellers, 2).
					Return([]domain.RankingEntry{}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:   "Ranking com n não numérico",
			target: "/v1/analytics/rankings/sellers?n=dez",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Ranking com dimensão desconhecida é rejeitado antes de consultar a origem",
			target: "/v1/analytics/rankings/regioes",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Ranking com n negativo é rejeitado pelo motor",
			target: "/v1/analytics/rankings/categories?n=-1",
			setup: func() {
				service.EXPECT().GetRanking(gomock.Any(), gomock.Any(), analytics.DimensionCategories, -1).
					Return(nil, domain.ErrNegativeTopN)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Comparação semanal por número de vendas",
			target: "/v1/analytics/comparison?window=week&metric=count",
			setup: func() {
				service.EXPECT().GetComparison(gomock.Any(), domain.WindowWeek, true).
					Return(&domain.ComparisonResult{ChangePercent: &change}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"changePercent":25`)
				assert.Contains(t, rec.Body.String(), `"metric":"count"`)
			},
		},
		{
			name:   "Comparação padrão é mensal por receita",
			target: "/v1/analytics/comparison",
			setup: func() {
				service.EXPECT().GetComparison(gomock.Any(), domain.WindowMonth, false).
					Return(&domain.ComparisonResult{}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"changePercent":null`)
			},
		},
		{
			name:   "Métrica inválida",
			target: "/v1/analytics/comparison?metric=lucro",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "Janela inválida",
			target: "/v1/analytics/comparison?window=YEAR",
			setup:  func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			tt.validate(t, serve(routes, http.MethodGet, tt.target, nil))
		})
	}
}

func TestGetSellerRanking(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := rankmocks.NewMockRankingService(ctrl)
	service.EXPECT().GetSellerRanking(gomock.Any(), "ana").Return(&domain.SellerRankingResponse{
		Month:      "03-2024",
		Ranking:    []domain.SellerStanding{{Username: "ana", Name: "Ana Souza", Position: 1}},
		MyPosition: 1,
	}, nil)

	rec := serve(SellerRanking(service), http.MethodGet, "/v1/sellers/ranking?seller=ana", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body domain.SellerRankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "03-2024", body.Month)
	assert.Equal(t, 1, body.MyPosition)
	require.Len(t, body.Ranking, 1)
	assert.Equal(t, "Ana Souza", body.Ranking[0].Name)
}

type fakeStockAlerts struct {
	started bool
	calls   int
	digest  *scheduler.StockAlertDigest
}

func (f *fakeStockAlerts) TriggerManualSync() bool {
	f.calls++
	return f.started
}

func (f *fakeStockAlerts) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.started}
}

func (f *fakeStockAlerts) LastDigest() *scheduler.StockAlertDigest {
	return f.digest
}

func TestCronJobs(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		job        *fakeStockAlerts
		method     string
		target     string
		wantStatus int
		wantCalls  int
	}{
		{
			name:       "Execução manual dos alertas de estoque",
			job:        &fakeStockAlerts{started: true},
			method:     http.MethodPost,
			target:     "/v1/cron/stock-alerts/run",
			wantStatus: http.StatusAccepted,
			wantCalls:  1,
		},
		{
			name:       "Tipo all dispara os alertas de estoque",
			job:        &fakeStockAlerts{started: true},
			method:     http.MethodPost,
			target:     "/v1/cron/all/run",
			wantStatus: http.StatusAccepted,
			wantCalls:  1,
		},
		{
			name:       "Verificação já em andamento",
			job:        &fakeStockAlerts{started: false},
			method:     http.MethodPost,
			target:     "/v1/cron/stock-alerts/run",
			wantStatus: http.StatusConflict,
			wantCalls:  1,
		},
		{
			name:       "Tipo desconhecido",
			job:        &fakeStockAlerts{started: true},
			method:     http.MethodPost,
			target:     "/v1/cron/meta/run",
			wantStatus: http.StatusBadRequest,
			wantCalls:  0,
		},
		{
			name:       "Status das rotinas",
			job:        &fakeStockAlerts{},
			method:     http.MethodGet,
			target:     "/v1/cron/status",
			wantStatus: http.StatusOK,
			wantCalls:  0,
		},
		{
			name:       "Sem verificação concluída",
			job:        &fakeStockAlerts{},
			method:     http.MethodGet,
			target:     "/v1/stock-alerts/latest",
			wantStatus: http.StatusNotFound,
			wantCalls:  0,
		},
		{
			name: "Último resumo de estoque",
			job: &fakeStockAlerts{digest: &scheduler.StockAlertDigest{
				RunID:     "abc12345",
				Threshold: 10,
				Products:  []domain.Product{{ID: 1, Title: "Cabo", Stock: 0}},
			}},
			method:     http.MethodGet,
			target:     "/v1/stock-alerts/latest",
			wantStatus: http.StatusOK,
			wantCalls:  0,
		},
		{
			name:       "Método não suportado",
			job:        &fakeStockAlerts{},
			method:     http.MethodGet,
			target:     "/v1/cron/stock-alerts/run",
			wantStatus: http.StatusMethodNotAllowed,
			wantCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(CronJobs(CronJobServices{StockAlerts: tt.job}), tt.method, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalls, tt.job.calls)
		})
	}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealthcheck(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantBody   string
	}{
		{name: "Sem banco configurado", db: nil, wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "Banco disponível", db: fakePinger{}, wantStatus: http.StatusOK, wantBody: `"database":"ok"`},
		{name: "Banco indisponível", db: fakePinger{err: assert.AnError}, wantStatus: http.StatusServiceUnavailable, wantBody: `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(Healthcheck(tt.db), http.MethodGet, "/healthcheck", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
