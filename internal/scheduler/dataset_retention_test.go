package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gzlb/dash/internal/config"
	"github.com/gzlb/dash/internal/usecases/uploading/mocks"
)

func retentionConfig(enabled bool) *config.Config {
	return &config.Config{
		DatasetRetention: config.DatasetRetention{
			CronSchedule: "0 * * * *",
			Hours:        24,
			Enabled:      enabled,
		},
	}
}

func TestDatasetRetentionService_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasets := mocks.NewMockDatasetManager(ctrl)
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	service := NewDatasetRetentionService(mockDatasets, retentionConfig(true))
	service.now = func() time.Time { return now }

	// Mock: o corte é 24h antes do início da execução
	mockDatasets.EXPECT().
		PurgeOlderThan(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)).
		Return(3)

	removed := service.Run()

	assert.Equal(t, 3, removed)
	status := service.GetStatus()
	assert.Equal(t, 3, status["last_removed"])
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, now, status["last_run_started_at"])
	assert.Equal(t, "24h0m0s", status["retention"])
}

func TestDatasetRetentionService_RunIgnoradoEmAndamento(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasets := mocks.NewMockDatasetManager(ctrl)
	service := NewDatasetRetentionService(mockDatasets, retentionConfig(true))
	service.syncRunning = true

	// Mock: nenhuma chamada ao repositório é esperada
	assert.Equal(t, -1, service.Run())
	assert.False(t, service.TriggerManualSync())
}

func TestDatasetRetentionService_StartDesabilitado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewDatasetRetentionService(mocks.NewMockDatasetManager(ctrl), retentionConfig(false))

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestDatasetRetentionService_CronInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := retentionConfig(true)
	cfg.DatasetRetention.CronSchedule = "não é cron"
	service := NewDatasetRetentionService(mocks.NewMockDatasetManager(ctrl), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}
