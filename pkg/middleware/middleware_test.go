package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/authenticating"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/mediation-stats-api/pkg/apiErrors"
	"github.com/vfg2006/mediation-stats-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			w.Header().Set("X-User", claims.UserID())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := mocks.NewMockAuthenticator(ctrl)
	handler := AuthMiddleware(auth)(okHandler())

	claims := &domain.Claims{}
	claims.Subject = "user-1"

	auth.EXPECT().ValidateToken("valid").Return(claims, nil).AnyTimes()
	auth.EXPECT().ValidateToken("expired").
		Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "")).AnyTimes()

	tests := []struct {
		name         string
		path         string
		header       string
		expectedCode int
		expectedUser string
	}{
		{name: "rota pública", path: "/healthcheck", expectedCode: http.StatusOK},
		{name: "métricas públicas", path: "/metrics", expectedCode: http.StatusOK},
		{name: "sem header", path: "/v1/stats", expectedCode: http.StatusUnauthorized},
		{name: "sem bearer", path: "/v1/stats", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "token expirado", path: "/v1/stats", header: "Bearer expired", expectedCode: http.StatusUnauthorized},
		{name: "token válido", path: "/v1/stats", header: "Bearer valid", expectedCode: http.StatusOK, expectedUser: "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, tt.expectedUser, rec.Header().Get("X-User"))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	handler := AdminOnly()(okHandler())

	admin := &domain.Claims{Role: domain.RoleAdmin}
	user := &domain.Claims{Role: "user"}

	tests := []struct {
		name         string
		claims       *domain.Claims
		expectedCode int
	}{
		{name: "sem claims", claims: nil, expectedCode: http.StatusUnauthorized},
		{name: "usuário comum", claims: user, expectedCode: http.StatusForbidden},
		{name: "administrador", claims: admin, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/sync/run", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/stats", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	var seen string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set(log.CorrelationHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(log.CorrelationHeader))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
