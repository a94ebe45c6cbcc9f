package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/mediation-stats-api/infrastructure/migration"
	"github.com/vfg2006/mediation-stats-api/internal/bootstrap"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/authenticating"
	"github.com/vfg2006/mediation-stats-api/pkg/utils"
)

var (
	flagUser     string
	flagStart    string
	flagEnd      string
	flagAppKey   string
	flagAdUnits  string
	flagCountry  string
	flagPlatform string
	flagRole     string
	flagTTL      time.Duration
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria ou atualiza as tabelas no Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
			if deps.DB == nil {
				return fmt.Errorf("migrate exige STORE_DRIVER=postgres")
			}

			applied, err := migration.Migrate(ctx, deps.DB)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) aplicada(s)\n", applied)
			return nil
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sincroniza a janela recente de um usuário",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
			result, err := deps.Syncer.SyncUserByID(ctx, flagUser)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		})
	},
}

var syncAllCmd = &cobra.Command{
	Use:   "sync-all",
	Short: "Sincroniza todos os usuários com credenciais, como o agendador",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
			report := deps.Syncer.SyncAll(ctx)
			if err := printJSON(cmd, report); err != nil {
				return err
			}

			if len(report.Failed) > 0 {
				return fmt.Errorf("%d de %d usuário(s) falharam", len(report.Failed), report.Users)
			}
			return nil
		})
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Consulta as estatísticas agregadas de um usuário",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := buildFilters()
		if err != nil {
			return err
		}

		return withDependencies(func(ctx context.Context, deps *bootstrap.Dependencies) error {
			result, err := deps.Querier.Query(ctx, flagUser, filters)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token de teste assinado com AUTH_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token, err := authenticating.GenerateToken(cfg, flagUser, flagRole, flagTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func buildFilters() (domain.StatsFilters, error) {
	start, err := utils.ParseDate(flagStart)
	if err != nil {
		return domain.StatsFilters{}, fmt.Errorf("--start inválido: %w", err)
	}

	end, err := utils.ParseDate(flagEnd)
	if err != nil {
		return domain.StatsFilters{}, fmt.Errorf("--end inválido: %w", err)
	}

	return domain.StatsFilters{
		StartDate: start,
		EndDate:   end,
		AppKey:    optional(flagAppKey),
		AdUnits:   optional(flagAdUnits),
		Country:   optional(flagCountry),
		Platform:  optional(flagPlatform),
	}, nil
}

func init() {
	for _, c := range []*cobra.Command{syncCmd, queryCmd, tokenCmd} {
		c.Flags().StringVar(&flagUser, "user", "", "ID do usuário (subject do token)")
		_ = c.MarkFlagRequired("user")
	}

	queryCmd.Flags().StringVar(&flagStart, "start", "", "Data inicial YYYY-MM-DD")
	queryCmd.Flags().StringVar(&flagEnd, "end", "", "Data final YYYY-MM-DD")
	queryCmd.Flags().StringVar(&flagAppKey, "app-key", "", "Filtra por appKey")
	queryCmd.Flags().StringVar(&flagAdUnits, "ad-units", "", "Filtra por ad unit (comparação tolerante)")
	queryCmd.Flags().StringVar(&flagCountry, "country", "", "Filtra por país")
	queryCmd.Flags().StringVar(&flagPlatform, "platform", "", "Filtra por plataforma")
	_ = queryCmd.MarkFlagRequired("start")
	_ = queryCmd.MarkFlagRequired("end")

	tokenCmd.Flags().StringVar(&flagRole, "role", "", "Role incluída no token (ex.: admin)")
	tokenCmd.Flags().DurationVar(&flagTTL, "ttl", time.Hour, "Validade do token")
}
