package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// Claims são as declarações do token emitido pelo provedor de identidade.
// O Subject é o ID do usuário e o namespace das partições.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID retorna o identificador autenticado do usuário
func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
