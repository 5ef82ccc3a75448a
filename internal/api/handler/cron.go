package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const (
	CronJobTypeStockAlerts = "stock-alerts"
	CronJobTypeAll         = "all"
)

// StockAlertJob é a rotina de alertas de estoque exposta para execução manual
type StockAlertJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
	LastDigest() *scheduler.StockAlertDigest
}

// CronJobServices contém as rotinas que podem ser executadas manualmente
type CronJobServices struct {
	StockAlerts StockAlertJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		log.ForContext(r.Context()).Infof("Execução manual solicitada: %s", cronType)

		switch cronType {
		case CronJobTypeStockAlerts, CronJobTypeAll:
			if services.StockAlerts == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de alertas de estoque não disponível", nil)
				return
			}
			if !services.StockAlerts.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, "Verificação de estoque já em andamento", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: stock-alerts, all", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.StockAlerts != nil {
			status[CronJobTypeStockAlerts] = services.StockAlerts.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}

// GetLatestStockAlerts retorna o resumo da última verificação de estoque
func GetLatestStockAlerts(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if services.StockAlerts == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de alertas de estoque não disponível", nil)
			return
		}

		digest := services.StockAlerts.LastDigest()
		if digest == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhuma verificação de estoque concluída", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, digest)
	}
}
