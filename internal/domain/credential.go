package domain

import "time"

// Credential é o par de acesso do usuário à API de estatísticas da rede de anúncios
type Credential struct {
	AccountID string `json:"accountId"`
	SecretKey string `json:"secretKey"`
}

// IsConfigured indica se ambos os campos foram preenchidos
func (c *Credential) IsConfigured() bool {
	return c != nil && c.AccountID != "" && c.SecretKey != ""
}

// UserCredential associa uma credencial ao usuário dono
type UserCredential struct {
	UserID     string
	Credential Credential
	UpdatedAt  time.Time
}

type UpdateCredentialRequest struct {
	AccountID string `json:"accountId"`
	SecretKey string `json:"secretKey"`
}

type CredentialStatusResponse struct {
	Configured bool       `json:"configured"`
	AccountID  string     `json:"accountId,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}
