package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/mediation-stats-api/internal/bootstrap"
	"github.com/vfg2006/mediation-stats-api/internal/config"
	"github.com/vfg2006/mediation-stats-api/pkg/log"
	"github.com/vfg2006/mediation-stats-api/pkg/utils"
)

var (
	flagTimeout time.Duration
	flagStore   string
)

var rootCmd = &cobra.Command{
	Use:           "statsctl",
	Short:         "Operações da API de estatísticas de mediação",
	Long:          "Aplica migrations, sincroniza usuários e consulta estatísticas sem passar pela API HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Minute, "Tempo máximo da operação")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Sobrescreve STORE_DRIVER (postgres ou memory)")

	rootCmd.AddCommand(migrateCmd, syncCmd, syncAllCmd, queryCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	if flagStore != "" {
		cfg.Database.StoreDriver = flagStore
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log.Setup(cfg.App.LogLevel)
	return cfg, nil
}

// withDependencies carrega configuração e dependências e executa fn dentro do timeout global
func withDependencies(fn func(ctx context.Context, deps *bootstrap.Dependencies) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	return fn(ctx, deps)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := utils.PrettyJson(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
