// Package bootstrap monta as dependências compartilhadas pela API e pela CLI de operação.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/cache"
	"github.com/vfg2006/mediation-stats-api/infrastructure/database/postgres"
	"github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource"
	"github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/ironsourceclient"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository/inmemory"
	"github.com/vfg2006/mediation-stats-api/internal/config"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/account"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/querying"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/syncing"
	"github.com/vfg2006/mediation-stats-api/pkg/secret"
)

type Dependencies struct {
	Config         *config.Config
	DB             *postgres.Connection
	CredentialRepo repository.CredentialRepository
	PartitionRepo  repository.PartitionRepository
	IronSource     ironsource.IronSourceIntegrator
	Syncer         *syncing.Service
	Querier        *querying.Service
	AccountService account.AccountService
}

// Close libera as conexões abertas em Build
func (d *Dependencies) Close() {
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
		}
	}
}

// Build conecta ao armazenamento configurado e instancia os serviços
func Build(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg}

	switch cfg.Database.StoreDriver {
	case config.StoreDriverMemory:
		logrus.Warn("Usando armazenamento em memória; os dados serão perdidos ao reiniciar")
		deps.CredentialRepo = inmemory.NewCredentialRepository()
		deps.PartitionRepo = inmemory.NewPartitionRepository()
	default:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
		}
		logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

		deps.DB = conn
		deps.CredentialRepo = repository.NewCredentialRepository(conn, secret.NewBox(cfg.SecretKey))
		deps.PartitionRepo = repository.NewPartitionRepository(conn)
	}

	applicationsCache, err := cache.NewApplicationsCache(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, seguindo sem cache de aplicativos")
		applicationsCache = cache.NoopApplicationsCache{}
	}

	deps.IronSource = ironsource.New(ironsourceclient.NewClient(cfg))

	deps.Syncer = syncing.NewService(
		deps.CredentialRepo,
		deps.PartitionRepo,
		deps.IronSource,
		syncing.WithLookbackDays(cfg.StatsSync.LookbackDays),
	)

	deps.Querier = querying.NewService(deps.PartitionRepo, cfg.Query.MaxRangeDays)

	deps.AccountService = account.NewService(deps.CredentialRepo, deps.IronSource, applicationsCache)

	return deps, nil
}
