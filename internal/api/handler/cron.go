package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gzlb/dash/internal/scheduler"
	"github.com/gzlb/dash/pkg/apiErrors"
	"github.com/gzlb/dash/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRetention = "retention"
)

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	DatasetRetentionService *scheduler.DatasetRetentionService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeRetention:
			if services.DatasetRetentionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de retenção de datasets não disponível", nil)
				return
			}
			if !services.DatasetRetentionService.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrSyncRunning, "Retenção de datasets já está em execução", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: retention", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.DatasetRetentionService != nil {
			status[CronJobTypeRetention] = services.DatasetRetentionService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	})
}
