package ironsourceclient

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
	"github.com/vfg2006/mediation-stats-api/internal/config"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

var testCredential = domain.Credential{AccountID: "account", SecretKey: "s3cr3t"}

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.Config{
		IronSource: config.IronSource{
			StatsURL:        server.URL + "/stats",
			ApplicationsURL: server.URL + "/applications",
		},
	})
}

func TestIronSourceClient_GetStats(t *testing.T) {
	t.Run("envia autenticação e parâmetros da consulta", func(t *testing.T) {
		var captured *http.Request
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			captured = r
			_, _ = w.Write([]byte(`[{"date":"2024-03-01","data":[{"revenue":1}]}]`))
		})

		groups, err := client.GetStats(context.Background(), testCredential, StatsParams{
			StartDate: "2024-03-01",
			EndDate:   "2024-03-03",
		})

		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.NotNil(t, captured)

		expectedToken := base64.StdEncoding.EncodeToString([]byte("account:s3cr3t"))
		assert.Equal(t, "Basic "+expectedToken, captured.Header.Get("Authorization"))
		assert.Equal(t, "application/json", captured.Header.Get("Accept"))
		assert.Equal(t, "/stats", captured.URL.Path)

		query := captured.URL.Query()
		assert.Equal(t, "2024-03-01", query.Get("startDate"))
		assert.Equal(t, "2024-03-03", query.Get("endDate"))
		assert.Equal(t, "date,adUnits,appKey,country", query.Get("breakdowns"))
		assert.Equal(t, "revenue,impressions,eCPM,clicks,completions", query.Get("metrics"))
	})

	t.Run("corpo null vira lista vazia", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`null`))
		})

		groups, err := client.GetStats(context.Background(), testCredential, StatsParams{StartDate: "2024-03-01", EndDate: "2024-03-01"})

		require.NoError(t, err)
		assert.NotNil(t, groups)
		assert.Empty(t, groups)
	})

	t.Run("corpo inválido retorna erro de decodificação", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"`))
		})

		_, err := client.GetStats(context.Background(), testCredential, StatsParams{StartDate: "2024-03-01", EndDate: "2024-03-01"})

		require.Error(t, err)
		var target *ironsourcedomain.SourceUnavailableError
		assert.False(t, errors.As(err, &target))
	})

	tests := []struct {
		name           string
		status         int
		body           string
		rateLimited    bool
		quotaExhausted bool
	}{
		{name: "erro interno", status: http.StatusInternalServerError, body: "internal error"},
		{name: "não autorizado", status: http.StatusUnauthorized, body: "unauthorized"},
		{name: "limite de requisições", status: http.StatusTooManyRequests, body: "slow down", rateLimited: true},
		{name: "cota esgotada", status: http.StatusTooManyRequests, body: "Quota exceeded, limit: 0", rateLimited: true, quotaExhausted: true},
		{name: "cota mencionada em outro status", status: http.StatusForbidden, body: "daily quota reached", rateLimited: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			groups, err := client.GetStats(context.Background(), testCredential, StatsParams{StartDate: "2024-03-01", EndDate: "2024-03-01"})

			assert.Nil(t, groups)
			var target *ironsourcedomain.SourceUnavailableError
			require.True(t, errors.As(err, &target))
			assert.Equal(t, tt.status, target.StatusCode)
			assert.Equal(t, tt.body, target.Body)
			assert.Equal(t, tt.rateLimited, target.IsRateLimited())
			assert.Equal(t, tt.quotaExhausted, target.IsQuotaExhausted())
		})
	}
}

func TestIronSourceClient_GetApplications(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []ironsourcedomain.Application
	}{
		{
			name: "lista",
			body: `[{"appKey":"k1","appName":"Game","platform":"android","bundleId":"com.game"},{"appKey":"k2","application_name":"Other","bundle_id":"com.other"}]`,
			expected: []ironsourcedomain.Application{
				{AppKey: "k1", AppName: "Game", Platform: "android", BundleID: "com.game"},
				{AppKey: "k2", ApplicationName: "Other", BundleIDSnake: "com.other"},
			},
		},
		{
			name: "objeto único",
			body: `{"appKey":"k1","appName":"Game","platform":"ios"}`,
			expected: []ironsourcedomain.Application{
				{AppKey: "k1", AppName: "Game", Platform: "ios"},
			},
		},
		{
			name:     "corpo null",
			body:     `null`,
			expected: []ironsourcedomain.Application{},
		},
		{
			name:     "corpo vazio",
			body:     ``,
			expected: []ironsourcedomain.Application{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				_, _ = w.Write([]byte(tt.body))
			})

			apps, err := client.GetApplications(context.Background(), testCredential)

			require.NoError(t, err)
			assert.Equal(t, "/applications", path)
			assert.Equal(t, tt.expected, apps)
		})
	}

	t.Run("status de erro", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		apps, err := client.GetApplications(context.Background(), testCredential)

		assert.Nil(t, apps)
		var target *ironsourcedomain.SourceUnavailableError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, http.StatusBadGateway, target.StatusCode)
	})
}
