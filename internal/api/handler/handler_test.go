package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
	ironsourcemocks "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/mocks"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository/inmemory"
	"github.com/vfg2006/mediation-stats-api/internal/api/handler/router"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/scheduler"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/account"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/querying"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/mediation-stats-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/mediation-stats-api/pkg/apiErrors"
	"github.com/vfg2006/mediation-stats-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func authenticated(req *http.Request, userID, role string) *http.Request {
	claims := &domain.Claims{Role: role}
	claims.Subject = userID
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestGetStats(t *testing.T) {
	partitions := inmemory.NewPartitionRepository()
	err := partitions.UpsertDays(context.Background(), "u1", []*domain.DayPartition{
		{Date: "2024-05-01", Rows: []*domain.MetricRow{
			{Date: "2024-05-01", AppKey: stringPtr("k1"), Country: stringPtr("US"), Revenue: 2, Impressions: 1000},
			{Date: "2024-05-01", AppKey: stringPtr("k2"), Country: stringPtr("BR"), Revenue: 1, Impressions: 500},
		}},
	})
	require.NoError(t, err)

	rt := router.New(router.WithRoutes(Stats(querying.NewService(partitions, 31), nil)...))

	tests := []struct {
		name         string
		url          string
		userID       string
		expectedCode int
		errorCode    string
		revenue      float64
	}{
		{name: "sem autenticação", url: "/v1/stats?startDate=2024-05-01&endDate=2024-05-02", expectedCode: http.StatusUnauthorized, errorCode: apiErrors.ErrInvalidToken},
		{name: "sem datas", url: "/v1/stats", userID: "u1", expectedCode: http.StatusBadRequest, errorCode: apiErrors.ErrMissingRequiredData},
		{name: "data malformada", url: "/v1/stats?startDate=01/05/2024&endDate=2024-05-02", userID: "u1", expectedCode: http.StatusBadRequest, errorCode: apiErrors.ErrInvalidFormat},
		{name: "intervalo grande demais", url: "/v1/stats?startDate=2024-01-01&endDate=2024-05-02", userID: "u1", expectedCode: http.StatusBadRequest, errorCode: apiErrors.ErrRangeTooLarge},
		{name: "sem filtros", url: "/v1/stats?startDate=2024-05-01&endDate=2024-05-02", userID: "u1", expectedCode: http.StatusOK, revenue: 3},
		{name: "filtro de país", url: "/v1/stats?startDate=2024-05-01&endDate=2024-05-02&country=BR", userID: "u1", expectedCode: http.StatusOK, revenue: 1},
		{name: "filtro vazio não restringe", url: "/v1/stats?startDate=2024-05-01&endDate=2024-05-02&appKey=", userID: "u1", expectedCode: http.StatusOK, revenue: 3},
		{name: "outro usuário", url: "/v1/stats?startDate=2024-05-01&endDate=2024-05-02", userID: "u2", expectedCode: http.StatusOK, revenue: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.userID != "" {
				req = authenticated(req, tt.userID, "")
			}
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, req)

			require.Equal(t, tt.expectedCode, rec.Code)
			if tt.errorCode != "" {
				assert.Equal(t, tt.errorCode, decodeError(t, rec).Code)
				return
			}

			var result domain.StatsResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.InDelta(t, tt.revenue, result.Stats.Revenue, 1e-9)
			assert.NotNil(t, result.ChartData)
			assert.NotNil(t, result.TableRows)
		})
	}
}

func TestRequestSync(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		errorCode    string
	}{
		{name: "sucesso", expectedCode: http.StatusOK},
		{name: "sem credencial", err: syncing.ErrCredentialNotConfigured, expectedCode: http.StatusPreconditionFailed, errorCode: apiErrors.ErrCredentialNotConfigured},
		{
			name:         "fonte indisponível",
			err:          &syncing.UserSyncError{UserID: "u1", Stage: "fetch", Err: &ironsourcedomain.SourceUnavailableError{StatusCode: 500, Body: "oops"}},
			expectedCode: http.StatusBadGateway,
			errorCode:    apiErrors.ErrSourceUnavailable,
		},
		{
			name:         "cota esgotada",
			err:          &syncing.UserSyncError{UserID: "u1", Stage: "fetch", Err: &ironsourcedomain.SourceUnavailableError{StatusCode: 429, Body: "Quota exceeded, limit: 0"}},
			expectedCode: http.StatusTooManyRequests,
			errorCode:    apiErrors.ErrSourceQuota,
		},
		{
			name:         "falha ao gravar",
			err:          &syncing.UserSyncError{UserID: "u1", Stage: "store", Err: assert.AnError},
			expectedCode: http.StatusInternalServerError,
			errorCode:    apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			syncer := syncmocks.NewMockSyncer(ctrl)
			rt := router.New(router.WithRoutes(Stats(nil, syncer)...))

			if tt.err != nil {
				syncer.EXPECT().SyncUserByID(gomock.Any(), "u1").Return(nil, tt.err)
			} else {
				syncer.EXPECT().SyncUserByID(gomock.Any(), "u1").Return(&domain.SyncResult{UserID: "u1", Partitions: 3}, nil)
			}

			req := authenticated(httptest.NewRequest(http.MethodPost, "/v1/stats/sync", nil), "u1", "")
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, req)

			require.Equal(t, tt.expectedCode, rec.Code)
			if tt.errorCode != "" {
				assert.Equal(t, tt.errorCode, decodeError(t, rec).Code)
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, true, body["ok"])
		})
	}
}

func TestAccountRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := ironsourcemocks.NewMockIronSourceIntegrator(ctrl)
	service := account.NewService(inmemory.NewCredentialRepository(), source, nil)
	rt := router.New(router.WithRoutes(Account(service)...))

	t.Run("aplicativos sem credencial", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(httptest.NewRequest(http.MethodGet, "/v1/applications", nil), "u1", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("status sem credencial", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(httptest.NewRequest(http.MethodGet, "/v1/me/credentials", nil), "u1", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"configured":false}`, rec.Body.String())
	})

	t.Run("corpo inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/me/credentials", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(req, "u1", ""))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("campos obrigatórios", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/me/credentials", bytes.NewBufferString(`{"accountId":"acc"}`))
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(req, "u1", ""))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
	})

	t.Run("salva e lista aplicativos", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/me/credentials", bytes.NewBufferString(`{"accountId":"acc","secretKey":"s3cr3t"}`))
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(req, "u1", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "s3cr3t")

		source.EXPECT().
			GetApplications(gomock.Any(), domain.Credential{AccountID: "acc", SecretKey: "s3cr3t"}).
			Return([]*domain.Application{{AppKey: "k1", AppName: "Jogo", Platform: "iOS", BundleID: "com.jogo"}})

		rec = httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(httptest.NewRequest(http.MethodGet, "/v1/applications", nil), "u1", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"appKey":"k1","appName":"Jogo","platform":"iOS","bundleId":"com.jogo"}]`, rec.Body.String())
	})
}

type fakeTrigger struct {
	started bool
	status  scheduler.StatsSyncStatus
}

func (f *fakeTrigger) TriggerManualSync() bool {
	return f.started
}

func (f *fakeTrigger) GetStatus() scheduler.StatsSyncStatus {
	return f.status
}

func TestCronJobs(t *testing.T) {
	trigger := &fakeTrigger{started: true, status: scheduler.StatsSyncStatus{SyncEnabled: true, SyncCron: "0 */6 * * *"}}
	rt := router.New(router.WithRoutes(CronJobs(trigger)...))

	t.Run("apenas administradores", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(httptest.NewRequest(http.MethodPost, "/v1/cron/sync/run", nil), "u1", "user"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("dispara sincronização", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(httptest.NewRequest(http.MethodPost, "/v1/cron/sync/run", nil), "admin", domain.RoleAdmin))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("sincronização em andamento", func(t *testing.T) {
		trigger.started = false
		defer func() { trigger.started = true }()

		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(httptest.NewRequest(http.MethodPost, "/v1/cron/sync/run", nil), "admin", domain.RoleAdmin))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, authenticated(httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil), "admin", domain.RoleAdmin))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"sync_cron":"0 */6 * * *"`)
	})
}

func TestHealthcheckAndMetrics(t *testing.T) {
	rt := router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Metrics()...),
	)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
