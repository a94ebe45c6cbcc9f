package ironsource

import (
	jsoniter "github.com/json-iterator/go"
	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FlattenRows expande cada grupo da resposta em uma linha por observação,
// herdando as dimensões do grupo. A ordem de saída segue a ordem dos grupos
// e, dentro de cada grupo, a ordem das observações.
func FlattenRows(groups []ironsourcedomain.StatsGroup) []*domain.MetricRow {
	rows := make([]*domain.MetricRow, 0)

	for _, group := range groups {
		date := ""
		if d := stringOrNil(group.Date); d != nil {
			date = *d
		}
		adUnits := stringOrNil(group.AdUnits)
		appKey := stringOrNil(group.AppKey)
		country := stringOrNil(group.Country)
		platform := stringOrNil(group.Platform)

		for _, observation := range group.Data {
			rows = append(rows, &domain.MetricRow{
				Date:        date,
				AdUnits:     adUnits,
				AppKey:      appKey,
				Country:     country,
				Platform:    platform,
				Revenue:     numberOrZero(observation.Revenue),
				Impressions: int64(numberOrZero(observation.Impressions)),
				ECPM:        numberOrZero(observation.ECPM),
				Clicks:      int64(numberOrZero(observation.Clicks)),
				Completions: int64(numberOrZero(observation.Completions)),
			})
		}
	}

	return rows
}

// stringOrNil devolve nil para campos ausentes, nulos ou que não sejam string
func stringOrNil(raw jsoniter.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}

	return &value
}

// numberOrZero devolve 0 para qualquer valor que não seja um número JSON
func numberOrZero(raw jsoniter.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return 0
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}

	return value
}
