package syncing

import (
	"errors"
	"fmt"

	ironsourcedomain "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/domain"
)

var (
	// ErrCredentialNotConfigured indica que o usuário ainda não salvou conta e chave da rede de anúncios
	ErrCredentialNotConfigured = errors.New("credenciais da rede de anúncios não configuradas")
	ErrMissingUserID           = errors.New("usuário não informado")
)

// UserSyncError associa uma falha de sincronização ao usuário e à etapa em que ocorreu
type UserSyncError struct {
	UserID string
	Stage  string
	Err    error
}

func (e *UserSyncError) Error() string {
	return fmt.Sprintf("sincronização do usuário %s falhou em %s: %s", e.UserID, e.Stage, e.Err.Error())
}

func (e *UserSyncError) Unwrap() error {
	return e.Err
}

// IsSourceUnavailable verifica se a falha veio da API da rede de anúncios
func IsSourceUnavailable(err error) bool {
	var sourceErr *ironsourcedomain.SourceUnavailableError
	return errors.As(err, &sourceErr)
}
