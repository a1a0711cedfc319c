package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/gzlb/dash/internal/config"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/pkg/log"
)

// DatasetRetentionConfig representa a configuração da limpeza de datasets
type DatasetRetentionConfig struct {
	CronSchedule string
	Retention    time.Duration
	SyncEnabled  bool
}

// DatasetRetentionService remove periodicamente os uploads mais antigos que a janela de retenção
type DatasetRetentionService struct {
	scheduler         *gocron.Scheduler
	config            DatasetRetentionConfig
	datasets          uploading.DatasetManager
	now               func() time.Time
	syncRunning       bool
	syncMutex         sync.Mutex
	lastRunStartedAt  time.Time
	lastRunFinishedAt time.Time
	lastRemoved       int
}

// NewDatasetRetentionService cria uma nova instância do serviço de retenção
func NewDatasetRetentionService(datasets uploading.DatasetManager, appConfig *config.Config) *DatasetRetentionService {
	retentionConfig := DatasetRetentionConfig{
		CronSchedule: appConfig.DatasetRetention.CronSchedule,
		Retention:    time.Duration(appConfig.DatasetRetention.Hours) * time.Hour,
		SyncEnabled:  appConfig.DatasetRetention.Enabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": retentionConfig.CronSchedule,
		"retention":     retentionConfig.Retention.String(),
		"sync_enabled":  retentionConfig.SyncEnabled,
	}).Info("Configuração do agendador de retenção de datasets carregada")

	return &DatasetRetentionService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    retentionConfig,
		datasets:  datasets,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *DatasetRetentionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Retenção de datasets desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de retenção de datasets")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Run()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retenção de datasets: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de retenção de datasets")
		s.scheduler.Stop()
	}()

	return nil
}

// Run remove os datasets expirados. Retorna -1 quando já existe uma execução em andamento.
func (s *DatasetRetentionService) Run() int {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Retenção de datasets já em andamento, ignorando")
		return -1
	}
	s.syncRunning = true
	s.lastRunStartedAt = s.now()
	s.syncMutex.Unlock()

	cutoff := s.lastRunStartedAt.Add(-s.config.Retention)
	removed := s.datasets.PurgeOlderThan(cutoff)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastRunFinishedAt = s.now()
	s.lastRemoved = removed
	s.syncMutex.Unlock()

	log.L.WithFields(log.Fields{
		"cutoff":  cutoff.Format(time.RFC3339),
		"removed": removed,
	}).Info("Retenção de datasets concluída")

	return removed
}

// TriggerManualSync inicia manualmente uma limpeza. Retorna false se já houver uma em andamento.
func (s *DatasetRetentionService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Retenção de datasets já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	log.L.Info("Iniciando retenção manual de datasets")
	go s.Run()
	return true
}

// GetStatus retorna o status atual da limpeza
func (s *DatasetRetentionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":          s.syncRunning,
		"sync_cron":             s.config.CronSchedule,
		"sync_enabled":          s.config.SyncEnabled,
		"retention":             s.config.Retention.String(),
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunFinishedAt,
		"last_removed":          s.lastRemoved,
	}
}
