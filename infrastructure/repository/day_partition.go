package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/mediation-stats-api/infrastructure/database/postgres"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	statsDaysTable = "user_stats_days usd"
)

// PartitionRepository persiste as linhas de estatísticas por (usuário, data)
type PartitionRepository interface {
	// UpsertDays grava todas as partições em uma única transação, substituindo as linhas existentes
	UpsertDays(ctx context.Context, userID string, partitions []*domain.DayPartition) error
	// GetDay retorna nil quando a partição não existe
	GetDay(ctx context.Context, userID string, date string) (*domain.DayPartition, error)
}

type partitionRepository struct {
	conn postgres.Conn
}

func NewPartitionRepository(conn postgres.Conn) PartitionRepository {
	return &partitionRepository{
		conn: conn,
	}
}

func (r *partitionRepository) UpsertDays(ctx context.Context, userID string, partitions []*domain.DayPartition) error {
	if len(partitions) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, partition := range partitions {
			rowsJSON, err := json.Marshal(partition.Rows)
			if err != nil {
				return fmt.Errorf("erro ao serializar linhas da partição %s: %w", partition.Date, err)
			}

			query, args, err := squirrel.StatementBuilder.
				Insert("user_stats_days").
				Columns("user_id", "date", "rows").
				Values(userID, partition.Date, rowsJSON).
				Suffix(`
					ON CONFLICT (user_id, date) DO UPDATE SET
						rows = EXCLUDED.rows,
						updated_at = NOW()
				`).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("erro ao executar a query: %w", err)
			}
		}

		return nil
	})
}

func (r *partitionRepository) GetDay(ctx context.Context, userID string, date string) (*domain.DayPartition, error) {
	query, args, err := squirrel.
		Select("usd.user_id, to_char(usd.date, 'YYYY-MM-DD'), usd.rows").
		From(statsDaysTable).
		Where(squirrel.Eq{"usd.user_id": userID, "usd.date": date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	partition := &domain.DayPartition{}
	var rowsJSON []byte

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&partition.UserID,
		&partition.Date,
		&rowsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear partição: %w", err)
	}

	partition.Rows = make([]*domain.MetricRow, 0)
	if rowsJSON != nil {
		if err := json.Unmarshal(rowsJSON, &partition.Rows); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de rows: %w", err)
		}
	}

	return partition, nil
}
