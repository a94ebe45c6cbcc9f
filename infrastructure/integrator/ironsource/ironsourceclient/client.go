package ironsourceclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
	"github.com/vfg2006/mediation-stats-api/internal/config"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBodySize = 4096

type Client interface {
	GetStats(ctx context.Context, credential domain.Credential, params StatsParams) ([]ironsourcedomain.StatsGroup, error)
	GetApplications(ctx context.Context, credential domain.Credential) ([]ironsourcedomain.Application, error)
}

type IronSourceClient struct {
	httpClient      *http.Client
	statsURL        string
	applicationsURL string
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.IronSource.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &IronSourceClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		statsURL:        cfg.IronSource.StatsURL,
		applicationsURL: cfg.IronSource.ApplicationsURL,
	}
}

// basicAuth monta o cabeçalho Authorization no formato Basic base64(conta:chave)
func basicAuth(credential domain.Credential) string {
	token := base64.StdEncoding.EncodeToString([]byte(credential.AccountID + ":" + credential.SecretKey))
	return "Basic " + token
}

// do executa a requisição autenticada e devolve o corpo quando o status é 2xx
func (c *IronSourceClient) do(ctx context.Context, endpoint string, credential domain.Credential, operation string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", basicAuth(credential))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.SourceRequests.WithLabelValues(operation, "error").Inc()
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	metrics.SourceRequests.WithLabelValues(operation, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &ironsourcedomain.SourceUnavailableError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	return body, nil
}
