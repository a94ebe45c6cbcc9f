package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/internal/config"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/metrics"
	"github.com/vfg2006/mediation-stats-api/internal/usecases/syncing"
)

// StatsSyncConfig representa a configuração do agendador de estatísticas
type StatsSyncConfig struct {
	CronSchedule string
	Location     *time.Location
	LookbackDays int
	SyncEnabled  bool
}

// StatsSyncStatus é o estado exposto em /v1/cron/status
type StatsSyncStatus struct {
	SyncEnabled         bool               `json:"sync_enabled"`
	SyncCron            string             `json:"sync_cron"`
	SyncTimezone        string             `json:"sync_timezone"`
	SyncLookbackDays    int                `json:"sync_lookback_days"`
	Running             bool               `json:"running"`
	NextRunAt           *time.Time         `json:"next_run_at,omitempty"`
	LastSyncStartedAt   time.Time          `json:"last_sync_started_at"`
	LastSyncCompletedAt time.Time          `json:"last_sync_completed_at"`
	LastReport          *domain.SyncReport `json:"last_report,omitempty"`
}

// StatsSyncService agenda a sincronização de estatísticas de todos os usuários
type StatsSyncService struct {
	scheduler           *gocron.Scheduler
	config              StatsSyncConfig
	syncer              syncing.Syncer
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *domain.SyncReport
}

func NewStatsSyncService(syncer syncing.Syncer, appConfig *config.Config) *StatsSyncService {
	syncConfig := StatsSyncConfig{
		CronSchedule: appConfig.StatsSync.CronSchedule,
		Location:     appConfig.SyncLocation(),
		LookbackDays: appConfig.StatsSync.LookbackDays,
		SyncEnabled:  appConfig.StatsSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"timezone":      syncConfig.Location.String(),
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de estatísticas carregada")

	return &StatsSyncService{
		scheduler: gocron.NewScheduler(syncConfig.Location),
		config:    syncConfig,
		syncer:    syncer,
		baseCtx:   context.Background(),
	}
}

// Start agenda SyncAll na expressão cron configurada e para o agendador quando ctx é cancelado
func (s *StatsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de estatísticas desabilitada por configuração")
		return nil
	}

	s.baseCtx = ctx

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de estatísticas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de estatísticas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de estatísticas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa uma sincronização completa. Retorna false sem executar
// quando outra sincronização já está em andamento.
func (s *StatsSyncService) RunOnce(ctx context.Context) (*domain.SyncReport, bool) {
	if !s.claimRun() {
		logrus.Info("Sincronização de estatísticas já em andamento, ignorando")
		return nil, false
	}

	return s.runClaimed(ctx), true
}

// claimRun marca a sincronização como em andamento; false se já estava
func (s *StatsSyncService) claimRun() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

// runClaimed executa a sincronização já reivindicada por claimRun e libera a marca ao final
func (s *StatsSyncService) runClaimed(ctx context.Context) *domain.SyncReport {
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()
	report := s.syncer.SyncAll(ctx)
	if report == nil {
		report = &domain.SyncReport{}
	}
	duration := time.Since(startTime)

	metrics.SyncRunDuration.Observe(duration.Seconds())

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastReport = report
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"users":    report.Users,
		"failed":   len(report.Failed),
	}).Info("Execução do agendador de estatísticas concluída")

	return report
}

// TriggerManualSync inicia uma sincronização em segundo plano.
// Retorna false quando já existe uma em andamento.
func (s *StatsSyncService) TriggerManualSync() bool {
	if !s.claimRun() {
		logrus.Info("Sincronização de estatísticas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de estatísticas")
	go s.runClaimed(s.baseCtx)
	return true
}

func (s *StatsSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *StatsSyncService) GetStatus() StatsSyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := StatsSyncStatus{
		SyncEnabled:         s.config.SyncEnabled,
		SyncCron:            s.config.CronSchedule,
		SyncTimezone:        s.config.Location.String(),
		SyncLookbackDays:    s.config.LookbackDays,
		Running:             s.syncRunning,
		LastSyncStartedAt:   s.lastSyncStartedAt,
		LastSyncCompletedAt: s.lastSyncCompletedAt,
		LastReport:          s.lastReport,
	}

	if s.scheduler.IsRunning() {
		_, next := s.scheduler.NextRun()
		if !next.IsZero() {
			status.NextRunAt = &next
		}
	}

	return status
}
