package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/migration"
	"github.com/vfg2006/mediation-stats-api/internal/api"
	"github.com/vfg2006/mediation-stats-api/internal/bootstrap"
	"github.com/vfg2006/mediation-stats-api/internal/config"
	"github.com/vfg2006/mediation-stats-api/internal/scheduler"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/authenticating"
	"github.com/vfg2006/mediation-stats-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar dependências")
	}
	defer deps.Close()

	if deps.DB != nil {
		if _, err := migration.Migrate(ctx, deps.DB); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrations")
		}
	}

	authenticator := authenticating.NewService(cfg)

	statsSyncService := scheduler.NewStatsSyncService(deps.Syncer, cfg)
	if err := statsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de estatísticas")
	} else {
		logrus.Info("Agendador de sincronização de estatísticas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		deps.Querier,
		deps.Syncer,
		deps.AccountService,
		authenticator,
		statsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
