package syncing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/integrator/ironsource"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/metrics"
	"github.com/vfg2006/mediation-stats-api/pkg/utils"
)

const (
	DefaultLookbackDays = 2

	triggerOnDemand  = "on_demand"
	triggerScheduled = "scheduled"
)

type Syncer interface {
	// SyncUser busca a janela recente da fonte e grava as partições do usuário em um único lote
	SyncUser(ctx context.Context, userID string, credential domain.Credential) (*domain.SyncResult, error)
	// SyncUserByID resolve a credencial salva do usuário e sincroniza sob demanda
	SyncUserByID(ctx context.Context, userID string) (*domain.SyncResult, error)
	// SyncAll sincroniza todos os usuários com credencial; a falha de um não interrompe os demais
	SyncAll(ctx context.Context) *domain.SyncReport
}

type Service struct {
	credentialRepo repository.CredentialRepository
	partitionRepo  repository.PartitionRepository
	source         ironsource.IronSourceIntegrator
	lookbackDays   int
	now            func() time.Time
}

type Option func(*Service)

// WithClock substitui o relógio usado para calcular a janela de sincronização
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLookbackDays define quantos dias antes de hoje entram na janela
func WithLookbackDays(days int) Option {
	return func(s *Service) {
		if days >= 0 {
			s.lookbackDays = days
		}
	}
}

func NewService(
	credentialRepo repository.CredentialRepository,
	partitionRepo repository.PartitionRepository,
	source ironsource.IronSourceIntegrator,
	opts ...Option,
) *Service {
	s := &Service{
		credentialRepo: credentialRepo,
		partitionRepo:  partitionRepo,
		source:         source,
		lookbackDays:   DefaultLookbackDays,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Window calcula a janela [hoje - lookback, hoje] em UTC.
// A fonte revisa os últimos dias após a publicação, por isso a janela é rebuscada a cada execução.
func (s *Service) Window() domain.SyncWindow {
	today := utils.TruncateToDay(s.now())
	return domain.SyncWindow{
		StartDate: today.AddDate(0, 0, -s.lookbackDays),
		EndDate:   today,
	}
}

func (s *Service) SyncUser(ctx context.Context, userID string, credential domain.Credential) (*domain.SyncResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	window := s.Window()
	result := &domain.SyncResult{
		UserID:    userID,
		StartDate: window.StartDate.Format(time.DateOnly),
		EndDate:   window.EndDate.Format(time.DateOnly),
	}

	rows, err := s.source.GetStatsRows(ctx, credential, window)
	if err != nil {
		return nil, &UserSyncError{UserID: userID, Stage: "fetch", Err: err}
	}

	partitions := domain.GroupRowsByDate(userID, rows)
	if len(partitions) > 0 {
		if err := s.partitionRepo.UpsertDays(ctx, userID, partitions); err != nil {
			return nil, &UserSyncError{UserID: userID, Stage: "store", Err: err}
		}
		metrics.PartitionsWritten.Add(float64(len(partitions)))
	}

	result.Rows = len(rows)
	result.Partitions = len(partitions)
	result.CompletedAt = s.now()

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"start_date": result.StartDate,
		"end_date":   result.EndDate,
		"rows":       result.Rows,
		"partitions": result.Partitions,
	}).Info("Estatísticas do usuário sincronizadas")

	return result, nil
}

func (s *Service) SyncUserByID(ctx context.Context, userID string) (*domain.SyncResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	credential, err := s.credentialRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if credential == nil || !credential.Credential.IsConfigured() {
		return nil, ErrCredentialNotConfigured
	}

	result, err := s.SyncUser(ctx, userID, credential.Credential)
	if err != nil {
		metrics.SyncUsers.WithLabelValues(triggerOnDemand, "failure").Inc()
		return nil, err
	}

	metrics.SyncUsers.WithLabelValues(triggerOnDemand, "success").Inc()
	return result, nil
}

func (s *Service) SyncAll(ctx context.Context) *domain.SyncReport {
	runID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("Não foi possível gerar o ID da execução")
	}

	report := &domain.SyncReport{
		RunID:     runID,
		StartedAt: s.now(),
		Succeeded: make([]*domain.SyncResult, 0),
		Failed:    make([]*domain.SyncFailure, 0),
	}

	logger := logrus.WithField("run_id", runID)

	credentials, err := s.credentialRepo.ListConfigured(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao listar usuários com credenciais para sincronização")
		report.FinishedAt = s.now()
		return report
	}

	report.Users = len(credentials)
	logger.WithField("users", len(credentials)).Info("Iniciando sincronização de estatísticas de todos os usuários")

	for _, credential := range credentials {
		if ctx.Err() != nil {
			logger.WithError(ctx.Err()).Warn("Sincronização interrompida pelo cancelamento do contexto")
			break
		}

		if !credential.Credential.IsConfigured() {
			continue
		}

		result, err := s.SyncUser(ctx, credential.UserID, credential.Credential)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"user_id": credential.UserID,
				"error":   err.Error(),
			}).Error("Erro ao sincronizar estatísticas do usuário")

			report.Failed = append(report.Failed, &domain.SyncFailure{
				UserID: credential.UserID,
				Error:  err.Error(),
			})
			metrics.SyncUsers.WithLabelValues(triggerScheduled, "failure").Inc()
			continue
		}

		report.Succeeded = append(report.Succeeded, result)
		metrics.SyncUsers.WithLabelValues(triggerScheduled, "success").Inc()
	}

	report.FinishedAt = s.now()

	logger.WithFields(logrus.Fields{
		"users":     report.Users,
		"succeeded": len(report.Succeeded),
		"failed":    len(report.Failed),
	}).Info("Sincronização de estatísticas concluída")

	return report
}
