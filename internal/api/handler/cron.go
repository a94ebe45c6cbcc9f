package handler

import (
	"net/http"

	"github.com/vfg2006/mediation-stats-api/internal/scheduler"
	"github.com/vfg2006/mediation-stats-api/pkg/apiErrors"
	"github.com/vfg2006/mediation-stats-api/pkg/log"
)

// StatsSyncTrigger é a parte do agendador usada pelas rotas administrativas
type StatsSyncTrigger interface {
	TriggerManualSync() bool
	GetStatus() scheduler.StatsSyncStatus
}

// RunStatsSync dispara manualmente a sincronização de todos os usuários
func RunStatsSync(trigger StatsSyncTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if trigger == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
			return
		}

		if !trigger.TriggerManualSync() {
			logger.Info("cron: sync already running")
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento", nil)
			return
		}

		logger.Info("cron: manual stats sync started")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Sincronização iniciada com sucesso",
		})
	})
}

// GetCronStatus retorna o estado do agendador e o resumo da última execução
func GetCronStatus(trigger StatsSyncTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if trigger == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"stats_sync": trigger.GetStatus(),
		})
	})
}
