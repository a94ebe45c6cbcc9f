package querying

import (
	"strings"
	"unicode"

	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

// adUnitAliases mapeia valores de filtro vindos da interface para o trecho
// que aparece no nome do ad unit reportado pela fonte
var adUnitAliases = map[string]string{
	"rewardedVideo": "rewarded",
}

// MatchAdUnit compara o ad unit da linha com o filtro de forma tolerante:
// sem diferenciar maiúsculas, ignorando espaços e aceitando contenção em qualquer sentido.
// Linha sem ad unit, vazio ou só com espaços, nunca casa.
func MatchAdUnit(rowValue *string, filter string) bool {
	if rowValue == nil {
		return false
	}

	normalized := removeSpaces(strings.ToLower(*rowValue))
	if normalized == "" {
		return false
	}
	f := strings.ToLower(filter)

	if strings.Contains(normalized, f) || strings.Contains(f, normalized) {
		return true
	}

	if alias, ok := adUnitAliases[filter]; ok {
		return strings.Contains(normalized, alias)
	}

	return false
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func matchExact(rowValue *string, filter *string) bool {
	if filter == nil {
		return true
	}
	return rowValue != nil && *rowValue == *filter
}

// matchRow aplica todos os filtros informados; filtros nil não restringem
func matchRow(row *domain.MetricRow, filters domain.StatsFilters) bool {
	if row == nil {
		return false
	}

	if !matchExact(row.AppKey, filters.AppKey) {
		return false
	}

	if filters.AdUnits != nil && !MatchAdUnit(row.AdUnits, *filters.AdUnits) {
		return false
	}

	if !matchExact(row.Country, filters.Country) {
		return false
	}

	return matchExact(row.Platform, filters.Platform)
}
