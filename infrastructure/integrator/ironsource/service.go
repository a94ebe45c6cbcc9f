package ironsource

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/ironsourceclient"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

type IronSourceIntegrator interface {
	// GetStatsRows busca as estatísticas da janela e devolve as linhas achatadas.
	// Falhas da API retornam *ironsourcedomain.SourceUnavailableError.
	GetStatsRows(ctx context.Context, credential domain.Credential, window domain.SyncWindow) ([]*domain.MetricRow, error)

	// GetApplications é best-effort: qualquer falha resulta em lista vazia
	GetApplications(ctx context.Context, credential domain.Credential) []*domain.Application
}

type IronSourceService struct {
	Client ironsourceclient.Client
}

func New(client ironsourceclient.Client) IronSourceIntegrator {
	return &IronSourceService{
		Client: client,
	}
}

func (s *IronSourceService) GetStatsRows(ctx context.Context, credential domain.Credential, window domain.SyncWindow) ([]*domain.MetricRow, error) {
	params := ironsourceclient.StatsParams{
		StartDate: window.StartDate.Format(time.DateOnly),
		EndDate:   window.EndDate.Format(time.DateOnly),
	}

	groups, err := s.Client.GetStats(ctx, credential, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": credential.AccountID,
			"start_date": params.StartDate,
			"end_date":   params.EndDate,
			"error":      err.Error(),
		}).Error("ironsource: failed to get stats from API")
		return nil, err
	}

	rows := FlattenRows(groups)

	logrus.WithFields(logrus.Fields{
		"account_id": credential.AccountID,
		"groups":     len(groups),
		"rows":       len(rows),
	}).Debug("ironsource: stats flattened")

	return rows, nil
}

func (s *IronSourceService) GetApplications(ctx context.Context, credential domain.Credential) []*domain.Application {
	apps, err := s.Client.GetApplications(ctx, credential)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": credential.AccountID,
			"error":      err.Error(),
		}).Warn("ironsource: failed to list applications, returning empty list")
		return make([]*domain.Application, 0)
	}

	applications := make([]*domain.Application, 0, len(apps))
	for _, app := range apps {
		applications = append(applications, &domain.Application{
			AppKey:   app.AppKey,
			AppName:  app.Name(),
			Platform: app.Platform,
			BundleID: app.Bundle(),
		})
	}

	return applications
}
