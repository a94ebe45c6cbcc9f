package domain

import "time"

// StatsFilters são os filtros da consulta de estatísticas.
// Campos nil não restringem o resultado.
type StatsFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	AppKey    *string
	AdUnits   *string
	Country   *string
	Platform  *string
}

// StatsTotals são os totais agregados das linhas filtradas
type StatsTotals struct {
	Revenue     float64 `json:"revenue"`
	Impressions int64   `json:"impressions"`
	ECPM        float64 `json:"ecpm"`
	Clicks      int64   `json:"clicks"`
	Completions int64   `json:"completions"`
}

// ChartPoint é a receita somada de uma data
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type StatsResult struct {
	Stats     StatsTotals  `json:"stats"`
	ChartData []ChartPoint `json:"chartData"`
	TableRows []*MetricRow `json:"tableRows"`
}

// CalculateECPM retorna a receita por mil impressões, ou 0 sem impressões
func CalculateECPM(revenue float64, impressions int64) float64 {
	if impressions == 0 {
		return 0
	}

	return revenue / float64(impressions) * 1000
}
