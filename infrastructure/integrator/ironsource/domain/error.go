package ironsourcedomain

import (
	"fmt"
	"net/http"
	"strings"
)

// SourceUnavailableError indica que a API da rede de anúncios respondeu com status de erro
type SourceUnavailableError struct {
	StatusCode int
	Body       string
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("ironsource: API respondeu %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited indica limite de requisições ou de cota
func (e *SourceUnavailableError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		strings.Contains(strings.ToLower(e.Body), "quota")
}

// IsQuotaExhausted diferencia uma conta sem cota (limit: 0) de um limite transitório
func (e *SourceUnavailableError) IsQuotaExhausted() bool {
	return e.IsRateLimited() && strings.Contains(e.Body, "limit: 0")
}
