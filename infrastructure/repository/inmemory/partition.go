// Package inmemory implementa os repositórios em memória, usados nos testes e
// quando a API roda com STORE_DRIVER=memory.
package inmemory

import (
	"context"
	"sync"

	"github.com/vfg2006/mediation-stats-api/infrastructure/repository"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

type partitionKey struct {
	userID string
	date   string
}

type PartitionRepository struct {
	mu         sync.RWMutex
	partitions map[partitionKey][]*domain.MetricRow
	// FailUpsert, quando definido, é retornado por UpsertDays sem gravar nada
	FailUpsert error
}

var _ repository.PartitionRepository = (*PartitionRepository)(nil)

func NewPartitionRepository() *PartitionRepository {
	return &PartitionRepository{
		partitions: make(map[partitionKey][]*domain.MetricRow),
	}
}

func (r *PartitionRepository) UpsertDays(ctx context.Context, userID string, partitions []*domain.DayPartition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailUpsert != nil {
		return r.FailUpsert
	}

	for _, partition := range partitions {
		r.partitions[partitionKey{userID: userID, date: partition.Date}] = copyRows(partition.Rows)
	}

	return nil
}

func (r *PartitionRepository) GetDay(ctx context.Context, userID string, date string) (*domain.DayPartition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, exists := r.partitions[partitionKey{userID: userID, date: date}]
	if !exists {
		return nil, nil
	}

	return &domain.DayPartition{
		UserID: userID,
		Date:   date,
		Rows:   copyRows(rows),
	}, nil
}

// Dates retorna as datas gravadas para o usuário, sem ordem definida
func (r *PartitionRepository) Dates(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dates := make([]string, 0)
	for key := range r.partitions {
		if key.userID == userID {
			dates = append(dates, key.date)
		}
	}
	return dates
}

func copyRows(rows []*domain.MetricRow) []*domain.MetricRow {
	copied := make([]*domain.MetricRow, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		r := *row
		copied = append(copied, &r)
	}
	return copied
}
