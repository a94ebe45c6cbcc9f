package ironsourceclient

import (
	"context"
	"fmt"
	"net/url"

	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

const (
	statsBreakdowns = "date,adUnits,appKey,country"
	statsMetrics    = "revenue,impressions,eCPM,clicks,completions"
)

type StatsParams struct {
	StartDate string
	EndDate   string
}

func (c *IronSourceClient) GetStats(ctx context.Context, credential domain.Credential, params StatsParams) ([]ironsourcedomain.StatsGroup, error) {
	endpoint, err := url.Parse(c.statsURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}

	query := endpoint.Query()
	query.Set("startDate", params.StartDate)
	query.Set("endDate", params.EndDate)
	query.Set("breakdowns", statsBreakdowns)
	query.Set("metrics", statsMetrics)
	endpoint.RawQuery = query.Encode()

	body, err := c.do(ctx, endpoint.String(), credential, "stats")
	if err != nil {
		return nil, err
	}

	var groups []ironsourcedomain.StatsGroup
	if err := json.Unmarshal(body, &groups); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta de estatísticas: %w", err)
	}

	if groups == nil {
		groups = make([]ironsourcedomain.StatsGroup, 0)
	}

	return groups, nil
}
