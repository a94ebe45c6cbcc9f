package querying

import "errors"

var (
	// ErrInvalidArgument indica filtros de data ausentes ou intervalo maior que o permitido
	ErrInvalidArgument = errors.New("argumento inválido")
	ErrMissingUserID   = errors.New("usuário não informado")
)
