package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cachemocks "github.com/vfg2006/mediation-stats-api/infrastructure/cache/mocks"
	ironsourcemocks "github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource/mocks"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository/inmemory"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository/mocks"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestService_SaveCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	credentials := inmemory.NewCredentialRepository()
	appsCache := cachemocks.NewMockApplicationsCache(ctrl)
	service := NewService(credentials, nil, appsCache)

	appsCache.EXPECT().Invalidate(gomock.Any(), "u1")

	status, err := service.SaveCredential(context.Background(), "u1", &domain.UpdateCredentialRequest{
		AccountID: "  acc-1 ",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.True(t, status.Configured)
	assert.Equal(t, "acc-1", status.AccountID)
	assert.NotNil(t, status.UpdatedAt)

	stored, err := credentials.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored.Credential.SecretKey)
}

func TestService_SaveCredential_Validation(t *testing.T) {
	service := NewService(inmemory.NewCredentialRepository(), nil, nil)

	tests := []struct {
		name     string
		userID   string
		request  *domain.UpdateCredentialRequest
		expected error
		code     string
	}{
		{name: "sem usuário", userID: "", request: &domain.UpdateCredentialRequest{AccountID: "a", SecretKey: "s"}, expected: ErrMissingUserID, code: apiErrors.ErrInvalidToken},
		{name: "sem corpo", userID: "u1", request: nil, expected: ErrAccountIDMissing, code: apiErrors.ErrMissingRequiredData},
		{name: "sem accountId", userID: "u1", request: &domain.UpdateCredentialRequest{SecretKey: "s"}, expected: ErrAccountIDMissing, code: apiErrors.ErrMissingRequiredData},
		{name: "secretKey em branco", userID: "u1", request: &domain.UpdateCredentialRequest{AccountID: "a", SecretKey: "   "}, expected: ErrSecretKeyMissing, code: apiErrors.ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SaveCredential(context.Background(), tt.userID, tt.request)
			require.ErrorIs(t, err, tt.expected)

			var accountErr *AccountError
			require.True(t, errors.As(err, &accountErr))
			assert.Equal(t, tt.code, accountErr.Code)
		})
	}
}

func TestService_SaveCredential_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockCredentialRepository(ctrl)
	appsCache := cachemocks.NewMockApplicationsCache(ctrl)
	service := NewService(repo, nil, appsCache)

	repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	appsCache.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.SaveCredential(context.Background(), "u1", &domain.UpdateCredentialRequest{AccountID: "a", SecretKey: "s"})
	assert.ErrorIs(t, err, ErrSaveCredential)
}

func TestService_GetCredentialStatus(t *testing.T) {
	credentials := inmemory.NewCredentialRepository(&domain.UserCredential{
		UserID:     "u1",
		Credential: domain.Credential{AccountID: "acc", SecretKey: "s"},
		UpdatedAt:  time.Now(),
	})
	service := NewService(credentials, nil, nil)

	status, err := service.GetCredentialStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, status.Configured)
	assert.Equal(t, "acc", status.AccountID)

	status, err = service.GetCredentialStatus(context.Background(), "u2")
	require.NoError(t, err)
	assert.False(t, status.Configured)
	assert.Empty(t, status.AccountID)
}

func TestService_ListApplications(t *testing.T) {
	configured := &domain.UserCredential{
		UserID:     "u1",
		Credential: domain.Credential{AccountID: "acc", SecretKey: "s"},
	}
	apps := []*domain.Application{{AppKey: "k1", AppName: "App"}}

	t.Run("usa o cache quando disponível", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := ironsourcemocks.NewMockIronSourceIntegrator(ctrl)
		appsCache := cachemocks.NewMockApplicationsCache(ctrl)
		service := NewService(inmemory.NewCredentialRepository(configured), source, appsCache)

		appsCache.EXPECT().Get(gomock.Any(), "u1").Return(apps, true)
		source.EXPECT().GetApplications(gomock.Any(), gomock.Any()).Times(0)

		result, err := service.ListApplications(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, apps, result)
	})

	t.Run("busca na fonte e guarda no cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := ironsourcemocks.NewMockIronSourceIntegrator(ctrl)
		appsCache := cachemocks.NewMockApplicationsCache(ctrl)
		service := NewService(inmemory.NewCredentialRepository(configured), source, appsCache)

		appsCache.EXPECT().Get(gomock.Any(), "u1").Return(nil, false)
		source.EXPECT().GetApplications(gomock.Any(), configured.Credential).Return(apps)
		appsCache.EXPECT().Set(gomock.Any(), "u1", apps)

		result, err := service.ListApplications(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, apps, result)
	})

	t.Run("fonte falhou não guarda lista vazia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := ironsourcemocks.NewMockIronSourceIntegrator(ctrl)
		appsCache := cachemocks.NewMockApplicationsCache(ctrl)
		service := NewService(inmemory.NewCredentialRepository(configured), source, appsCache)

		appsCache.EXPECT().Get(gomock.Any(), "u1").Return(nil, false)
		source.EXPECT().GetApplications(gomock.Any(), gomock.Any()).Return([]*domain.Application{})
		appsCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		result, err := service.ListApplications(context.Background(), "u1")
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("sem credencial retorna lista vazia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := ironsourcemocks.NewMockIronSourceIntegrator(ctrl)
		service := NewService(inmemory.NewCredentialRepository(), source, nil)
		source.EXPECT().GetApplications(gomock.Any(), gomock.Any()).Times(0)

		result, err := service.ListApplications(context.Background(), "u2")
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}
