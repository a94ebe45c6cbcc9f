package account

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/cache"
	"github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/pkg/apiErrors"
)

type AccountService interface {
	SaveCredential(ctx context.Context, userID string, request *domain.UpdateCredentialRequest) (*domain.CredentialStatusResponse, error)
	GetCredentialStatus(ctx context.Context, userID string) (*domain.CredentialStatusResponse, error)
	// ListApplications nunca falha por causa da fonte: sem credencial ou com erro na API retorna lista vazia
	ListApplications(ctx context.Context, userID string) ([]*domain.Application, error)
}

type Service struct {
	credentialRepo    repository.CredentialRepository
	ironSourceService ironsource.IronSourceIntegrator
	applicationsCache cache.ApplicationsCache
}

func NewService(
	credentialRepo repository.CredentialRepository,
	ironSourceService ironsource.IronSourceIntegrator,
	applicationsCache cache.ApplicationsCache,
) AccountService {
	if applicationsCache == nil {
		applicationsCache = cache.NoopApplicationsCache{}
	}

	return &Service{
		credentialRepo:    credentialRepo,
		ironSourceService: ironSourceService,
		applicationsCache: applicationsCache,
	}
}

func (s *Service) SaveCredential(ctx context.Context, userID string, request *domain.UpdateCredentialRequest) (*domain.CredentialStatusResponse, error) {
	if userID == "" {
		return nil, NewAccountError(ErrMissingUserID, apiErrors.ErrInvalidToken, "", "")
	}

	if request == nil {
		return nil, NewAccountError(ErrAccountIDMissing, apiErrors.ErrMissingRequiredData, userID, "")
	}

	accountID := strings.TrimSpace(request.AccountID)
	secretKey := strings.TrimSpace(request.SecretKey)

	if accountID == "" {
		return nil, NewAccountError(ErrAccountIDMissing, apiErrors.ErrMissingRequiredData, userID, "")
	}

	if secretKey == "" {
		return nil, NewAccountError(ErrSecretKeyMissing, apiErrors.ErrMissingRequiredData, userID, "")
	}

	credential := &domain.UserCredential{
		UserID: userID,
		Credential: domain.Credential{
			AccountID: accountID,
			SecretKey: secretKey,
		},
	}

	if err := s.credentialRepo.SaveOrUpdate(ctx, credential); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao salvar credenciais da rede de anúncios")
		return nil, NewAccountError(ErrSaveCredential, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	// Aplicativos em cache pertencem à conta anterior
	s.applicationsCache.Invalidate(ctx, userID)

	logrus.WithField("user_id", userID).Info("Credenciais da rede de anúncios atualizadas")

	return s.GetCredentialStatus(ctx, userID)
}

func (s *Service) GetCredentialStatus(ctx context.Context, userID string) (*domain.CredentialStatusResponse, error) {
	if userID == "" {
		return nil, NewAccountError(ErrMissingUserID, apiErrors.ErrInvalidToken, "", "")
	}

	credential, err := s.credentialRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewAccountError(ErrFetchCredential, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	if credential == nil || !credential.Credential.IsConfigured() {
		return &domain.CredentialStatusResponse{Configured: false}, nil
	}

	updatedAt := credential.UpdatedAt
	response := &domain.CredentialStatusResponse{
		Configured: true,
		AccountID:  credential.Credential.AccountID,
	}
	if !updatedAt.IsZero() {
		response.UpdatedAt = &updatedAt
	}

	return response, nil
}

func (s *Service) ListApplications(ctx context.Context, userID string) ([]*domain.Application, error) {
	empty := make([]*domain.Application, 0)

	if userID == "" {
		return empty, nil
	}

	if applications, ok := s.applicationsCache.Get(ctx, userID); ok {
		return applications, nil
	}

	credential, err := s.credentialRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewAccountError(ErrFetchCredential, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}

	if credential == nil || !credential.Credential.IsConfigured() {
		return empty, nil
	}

	applications := s.ironSourceService.GetApplications(ctx, credential.Credential)

	// Lista vazia pode ser falha transitória da fonte; não guardar
	if len(applications) > 0 {
		s.applicationsCache.Set(ctx, userID, applications)
	}

	return applications, nil
}
