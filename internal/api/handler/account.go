package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/account"
	"github.com/vfg2006/mediation-stats-api/pkg/apiErrors"
	"github.com/vfg2006/mediation-stats-api/pkg/log"
)

func writeAccountError(w http.ResponseWriter, err error) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		apiErrors.WriteError(w, accountErr.Code, accountErr.Err.Error(), nil)
		return
	}
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
}

func ListApplications(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		applications, err := service.ListApplications(r.Context(), userID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("applications: failed to list applications")

			writeAccountError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, applications)
	})
}

func GetCredentials(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		status, err := service.GetCredentialStatus(r.Context(), userID)
		if err != nil {
			writeAccountError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}

func SaveCredentials(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var request domain.UpdateCredentialRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithFields(log.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("credentials: invalid request body")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		status, err := service.SaveCredential(r.Context(), userID, &request)
		if err != nil {
			writeAccountError(w, err)
			return
		}

		logger.WithField("user_id", userID).Info("credentials: updated")
		writeJSON(w, r, http.StatusOK, status)
	})
}
