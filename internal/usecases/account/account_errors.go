package account

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de conta da rede de anúncios
var (
	ErrMissingUserID    = errors.New("usuário não informado")
	ErrAccountIDMissing = errors.New("accountId é obrigatório")
	ErrSecretKeyMissing = errors.New("secretKey é obrigatório")

	ErrSaveCredential  = errors.New("erro ao salvar credenciais")
	ErrFetchCredential = errors.New("erro ao buscar credenciais")
)

// AccountError é um erro com contexto adicional para contas
type AccountError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	UserID  string // Usuário envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *AccountError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError cria um novo AccountError
func NewAccountError(err error, code string, userID string, details string) *AccountError {
	return &AccountError{
		Err:     err,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
