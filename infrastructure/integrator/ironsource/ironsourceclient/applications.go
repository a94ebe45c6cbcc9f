package ironsourceclient

import (
	"bytes"
	"context"
	"fmt"

	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

// GetApplications lista os apps da conta. A API pode responder com uma lista
// ou com um único objeto.
func (c *IronSourceClient) GetApplications(ctx context.Context, credential domain.Credential) ([]ironsourcedomain.Application, error) {
	body, err := c.do(ctx, c.applicationsURL, credential, "applications")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return make([]ironsourcedomain.Application, 0), nil
	}

	if trimmed[0] == '[' {
		var apps []ironsourcedomain.Application
		if err := json.Unmarshal(trimmed, &apps); err != nil {
			return nil, fmt.Errorf("erro ao decodificar a lista de aplicações: %w", err)
		}
		return apps, nil
	}

	var app ironsourcedomain.Application
	if err := json.Unmarshal(trimmed, &app); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a aplicação: %w", err)
	}

	return []ironsourcedomain.Application{app}, nil
}
