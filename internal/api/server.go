package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"

	"github.com/gzlb/dash/internal/api/handler"
	"github.com/gzlb/dash/internal/api/handler/router"
	"github.com/gzlb/dash/internal/config"
	"github.com/gzlb/dash/internal/scheduler"
	"github.com/gzlb/dash/internal/usecases/aggregating"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/internal/usecases/workspace"
	"github.com/gzlb/dash/pkg/log"
	"github.com/gzlb/dash/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Datasets         uploading.DatasetManager
	Workspace        *workspace.Workspace
	Aggregator       aggregating.Aggregator
	DatasetRetention *scheduler.DatasetRetentionService
}

// NewHandler monta o router com todas as rotas e a cadeia de middlewares global
func NewHandler(cfg *config.Config, services Services) http.Handler {
	cronServices := handler.CronJobServices{
		DatasetRetentionService: services.DatasetRetention,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Datasets)...),
		router.WithRoutes(handler.Datasets(services.Datasets, cfg.MaxUploadBytes())...),
		router.WithRoutes(handler.Sheets(services.Workspace)...),
		router.WithRoutes(handler.Tabs(services.Workspace)...),
		router.WithRoutes(handler.Currency(services.Aggregator)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Datasets == nil || services.Workspace == nil || services.Aggregator == nil {
		return nil, fmt.Errorf("api: datasets, workspace e aggregator são obrigatórios")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.L.WithField("timeout", "15s").Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
