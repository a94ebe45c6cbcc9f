package handler

import (
	"net/http"

	"github.com/vfg2006/mediation-stats-api/internal/api/handler/router"
	"github.com/vfg2006/mediation-stats-api/internal/metrics"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/account"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/querying"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/syncing"
	"github.com/vfg2006/mediation-stats-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Stats(querier querying.Querier, syncer syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/stats",
			Method:  http.MethodGet,
			Handler: GetStats(querier),
		},
		{
			Path:    "/v1/stats/sync",
			Method:  http.MethodPost,
			Handler: RequestSync(syncer),
		},
	}
}

func Account(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/applications",
			Method:  http.MethodGet,
			Handler: ListApplications(service),
		},
		{
			Path:    "/v1/me/credentials",
			Method:  http.MethodGet,
			Handler: GetCredentials(service),
		},
		{
			Path:    "/v1/me/credentials",
			Method:  http.MethodPut,
			Handler: SaveCredentials(service),
		},
	}
}

func CronJobs(trigger StatsSyncTrigger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/sync/run",
			Method:      http.MethodPost,
			Handler:     RunStatsSync(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
