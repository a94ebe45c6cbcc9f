package ironsourcedomain

import (
	jsoniter "github.com/json-iterator/go"
)

// StatsGroup é um elemento da resposta de estatísticas: dimensões compartilhadas
// e a lista de observações de métricas. Os valores ficam crus para que tipos
// inesperados não derrubem a decodificação da resposta inteira.
type StatsGroup struct {
	Date     jsoniter.RawMessage `json:"date"`
	AdUnits  jsoniter.RawMessage `json:"adUnits"`
	AppKey   jsoniter.RawMessage `json:"appKey"`
	Country  jsoniter.RawMessage `json:"country"`
	Platform jsoniter.RawMessage `json:"platform"`
	Data     []StatsObservation  `json:"data"`
}

// StatsObservation é um conjunto de métricas dentro de um grupo
type StatsObservation struct {
	Revenue     jsoniter.RawMessage `json:"revenue"`
	Impressions jsoniter.RawMessage `json:"impressions"`
	ECPM        jsoniter.RawMessage `json:"eCPM"`
	Clicks      jsoniter.RawMessage `json:"clicks"`
	Completions jsoniter.RawMessage `json:"completions"`
}

// Application é o formato de app retornado pela API, com os nomes alternativos de campo
type Application struct {
	AppKey          string `json:"appKey"`
	AppName         string `json:"appName"`
	ApplicationName string `json:"application_name"`
	Platform        string `json:"platform"`
	BundleID        string `json:"bundleId"`
	BundleIDSnake   string `json:"bundle_id"`
}

// Name retorna appName, ou application_name quando o primeiro está vazio
func (a Application) Name() string {
	if a.AppName != "" {
		return a.AppName
	}
	return a.ApplicationName
}

// Bundle retorna bundleId, ou bundle_id quando o primeiro está vazio
func (a Application) Bundle() string {
	if a.BundleID != "" {
		return a.BundleID
	}
	return a.BundleIDSnake
}
