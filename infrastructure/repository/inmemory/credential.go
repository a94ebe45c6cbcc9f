package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/mediation-stats-api/infrastructure/repository"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
)

type CredentialRepository struct {
	mu          sync.RWMutex
	credentials map[string]domain.UserCredential
}

var _ repository.CredentialRepository = (*CredentialRepository)(nil)

func NewCredentialRepository(credentials ...*domain.UserCredential) *CredentialRepository {
	r := &CredentialRepository{
		credentials: make(map[string]domain.UserCredential),
	}
	for _, c := range credentials {
		r.credentials[c.UserID] = *c
	}
	return r
}

func (r *CredentialRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	credential, exists := r.credentials[userID]
	if !exists {
		return nil, nil
	}
	return &credential, nil
}

func (r *CredentialRepository) ListConfigured(ctx context.Context) ([]*domain.UserCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	credentials := make([]*domain.UserCredential, 0, len(r.credentials))
	for _, c := range r.credentials {
		if !c.Credential.IsConfigured() {
			continue
		}
		credential := c
		credentials = append(credentials, &credential)
	}

	sort.Slice(credentials, func(i, j int) bool {
		return credentials[i].UserID < credentials[j].UserID
	})

	return credentials, nil
}

func (r *CredentialRepository) SaveOrUpdate(ctx context.Context, credential *domain.UserCredential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *credential
	stored.UpdatedAt = time.Now()
	r.credentials[credential.UserID] = stored
	return nil
}
