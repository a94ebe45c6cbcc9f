package handler

import (
	"net/http"

	"github.com/pkg/errors"
	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/querying"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/syncing"
	"github.com/vfg2006/mediation-stats-api/pkg/apiErrors"
	"github.com/vfg2006/mediation-stats-api/pkg/log"
	"github.com/vfg2006/mediation-stats-api/pkg/utils"
)

// optionalParam retorna nil para parâmetros ausentes ou vazios
func optionalParam(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}

func GetStats(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		if query.Get("startDate") == "" || query.Get("endDate") == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "startDate e endDate são obrigatórios", nil)
			return
		}

		startDate, err := utils.ParseDate(query.Get("startDate"))
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":    userID,
				"start_date": query.Get("startDate"),
				"error":      err.Error(),
			}).Warn("stats: invalid startDate parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "startDate deve estar no formato YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(query.Get("endDate"))
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":  userID,
				"end_date": query.Get("endDate"),
				"error":    err.Error(),
			}).Warn("stats: invalid endDate parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "endDate deve estar no formato YYYY-MM-DD", nil)
			return
		}

		filters := domain.StatsFilters{
			StartDate: startDate,
			EndDate:   endDate,
			AppKey:    optionalParam(r, "appKey"),
			AdUnits:   optionalParam(r, "adUnits"),
			Country:   optionalParam(r, "country"),
			Platform:  optionalParam(r, "platform"),
		}

		result, err := service.Query(r.Context(), userID, filters)
		if err != nil {
			if errors.Is(err, querying.ErrInvalidArgument) {
				apiErrors.WriteError(w, apiErrors.ErrRangeTooLarge, err.Error(), nil)
				return
			}

			logger.WithFields(log.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("stats: failed to query stats")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar estatísticas", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	})
}

func RequestSync(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		logger.WithField("user_id", userID).Info("stats: on-demand sync requested")

		result, err := service.SyncUserByID(r.Context(), userID)
		if err != nil {
			writeSyncError(w, r, userID, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"ok":     true,
			"result": result,
		})
	})
}

func writeSyncError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"user_id": userID,
		"error":   err.Error(),
	})

	if errors.Is(err, syncing.ErrCredentialNotConfigured) {
		apiErrors.WriteError(w, apiErrors.ErrCredentialNotConfigured, "Configure a conta e a chave da rede de anúncios nas configurações", nil)
		return
	}

	var sourceErr *ironsourcedomain.SourceUnavailableError
	if errors.As(err, &sourceErr) {
		if sourceErr.IsRateLimited() {
			logger.Warn("stats: source rate limited")
			apiErrors.WriteError(w, apiErrors.ErrSourceQuota, "Limite de requisições da rede de anúncios atingido", map[string]any{
				"quotaExhausted": sourceErr.IsQuotaExhausted(),
			})
			return
		}

		logger.Error("stats: source unavailable")
		apiErrors.WriteError(w, apiErrors.ErrSourceUnavailable, "A rede de anúncios não respondeu com sucesso", map[string]any{
			"statusCode": sourceErr.StatusCode,
		})
		return
	}

	logger.Error("stats: failed to sync user")
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao sincronizar estatísticas", nil)
}
