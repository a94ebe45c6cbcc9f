// Package migration cria e atualiza o schema Postgres usado pelos repositórios.
package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/database/postgres"
)

type Migration struct {
	Version     int
	Description string
	Statements  []string
}

// Migrations em ordem crescente de versão. Nunca alterar uma versão já aplicada.
var Migrations = []Migration{
	{
		Version:     1,
		Description: "partições diárias de estatísticas por usuário",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS user_stats_days (
				user_id    TEXT        NOT NULL,
				date       DATE        NOT NULL,
				rows       JSONB       NOT NULL DEFAULT '[]'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (user_id, date)
			)`,
		},
	},
	{
		Version:     2,
		Description: "credenciais da rede de anúncios por usuário",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS user_credentials (
				user_id    TEXT        PRIMARY KEY,
				account_id TEXT        NOT NULL,
				secret_key TEXT        NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
}

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version     INTEGER     PRIMARY KEY,
	description TEXT        NOT NULL,
	applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate aplica, cada uma em sua transação, as migrations ainda não registradas em schema_migrations
func Migrate(ctx context.Context, conn postgres.Conn) (int, error) {
	if _, err := conn.ExecContext(ctx, createVersionsTable); err != nil {
		return 0, fmt.Errorf("erro ao criar tabela schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range Migrations {
		if applied[m.Version] {
			continue
		}

		logger := logrus.WithFields(logrus.Fields{
			"version":     m.Version,
			"description": m.Description,
		})
		logger.Info("Aplicando migration")

		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			for _, statement := range m.Statements {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return err
				}
			}

			query, args, err := squirrel.StatementBuilder.
				Insert("schema_migrations").
				Columns("version", "description").
				Values(m.Version, m.Description).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx, query, args...)
			return err
		})
		if err != nil {
			return count, fmt.Errorf("erro ao aplicar migration %d: %w", m.Version, err)
		}

		count++
	}

	logrus.WithField("applied", count).Info("Migrations concluídas")
	return count, nil
}

func appliedVersions(ctx context.Context, conn postgres.Conn) (map[int]bool, error) {
	query, args, err := squirrel.StatementBuilder.
		Select("version").
		From("schema_migrations").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar migrations aplicadas: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
