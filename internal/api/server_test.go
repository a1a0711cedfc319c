package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzlb/dash/infrastructure/spreadsheet"
	"github.com/gzlb/dash/internal/config"
	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/internal/usecases/aggregating"
	"github.com/gzlb/dash/internal/usecases/filtering"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/internal/usecases/workspace"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{
			Host:           "localhost",
			Port:           "0",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Upload: config.Upload{MaxUploadMB: 1},
	}
}

func testServices(t *testing.T) Services {
	t.Helper()

	datasets := uploading.NewService(spreadsheet.NewParser())
	aggregator := aggregating.NewService(domain.RateTable{"USD": 1}, domain.DefaultMonetaryColumn)

	registry := workspace.NewRegistry()
	require.NoError(t, workspace.RegisterDefaultTabs(registry))

	return Services{
		Datasets:   datasets,
		Aggregator: aggregator,
		Workspace: workspace.New(registry, workspace.Dependencies{
			Datasets:       datasets,
			Filter:         filtering.NewService(),
			Aggregator:     aggregator,
			PreviewRows:    20,
			MonetaryColumn: domain.DefaultMonetaryColumn,
		}),
	}
}

func TestNewHandler_Middlewares(t *testing.T) {
	h := NewHandler(testConfig(), testServices(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/sheets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestNewHandler_PreflightOrigemNaoPermitida(t *testing.T) {
	h := NewHandler(testConfig(), testServices(t))

	req := httptest.NewRequest(http.MethodOptions, "/v1/datasets", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHandler_CronSemServico(t *testing.T) {
	h := NewHandler(testConfig(), testServices(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/retention/run", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNew(t *testing.T) {
	srv, err := New(testConfig(), testServices(t))
	require.NoError(t, err)
	assert.Equal(t, "localhost:0", srv.httpServer.Addr)

	_, err = New(testConfig(), Services{})
	assert.Error(t, err)
}
