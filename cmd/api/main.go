package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/gzlb/dash/infrastructure/database/postgres"
	"github.com/gzlb/dash/infrastructure/migration"
	"github.com/gzlb/dash/infrastructure/repository"
	"github.com/gzlb/dash/infrastructure/spreadsheet"
	"github.com/gzlb/dash/internal/api"
	"github.com/gzlb/dash/internal/config"
	"github.com/gzlb/dash/internal/scheduler"
	"github.com/gzlb/dash/internal/usecases/aggregating"
	"github.com/gzlb/dash/internal/usecases/converting"
	"github.com/gzlb/dash/internal/usecases/filtering"
	"github.com/gzlb/dash/internal/usecases/uploading"
	"github.com/gzlb/dash/internal/usecases/workspace"
	"github.com/gzlb/dash/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}

	if err := log.Configure(cfg.App.LogLevel); err != nil {
		log.L.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sem banco, as taxas vêm apenas de CURRENCY_RATES
	var rateRepo repository.CurrencyRateRepository
	if cfg.Database.Enabled {
		if err := migration.Up(cfg.Database.DSN); err != nil {
			log.L.WithError(err).Fatal("Erro ao executar migrations")
		}

		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		rateRepo = repository.NewCurrencyRateRepository(pgConn)
	}

	rates, err := converting.NewService(rateRepo, cfg.Analysis.CurrencyRates).LoadRates(ctx)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar taxas de câmbio")
	}

	datasets := uploading.NewService(spreadsheet.NewParser())
	aggregator := aggregating.NewService(rates, cfg.Analysis.MonetaryColumn)

	registry := workspace.NewRegistry()
	if err := workspace.RegisterDefaultTabs(registry); err != nil {
		log.L.WithError(err).Fatal("Erro ao registrar tipos de aba")
	}

	ws := workspace.New(registry, workspace.Dependencies{
		Datasets:       datasets,
		Filter:         filtering.NewService(),
		Aggregator:     aggregator,
		PreviewRows:    cfg.Analysis.PreviewRows,
		MonetaryColumn: cfg.Analysis.MonetaryColumn,
	})

	// Planilha inicial com uma aba de cada tipo
	if sheet, err := ws.AddSheet(""); err == nil {
		for _, kind := range ws.Kinds() {
			if _, err := ws.AddTab(sheet.ID, kind, ""); err != nil {
				log.L.WithError(err).WithField("kind", kind).Warn("Erro ao criar aba inicial")
			}
		}
	}

	retentionService := scheduler.NewDatasetRetentionService(datasets, cfg)
	if err := retentionService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de retenção de datasets")
	}

	server, err := api.New(cfg, api.Services{
		Datasets:         datasets,
		Workspace:        ws,
		Aggregator:       aggregator,
		DatasetRetention: retentionService,
	})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar servidor")
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// chdirToSource permite encontrar o .env ao rodar com go run de qualquer diretório
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		log.L.WithError(err).Debug("Não foi possível mudar para o diretório do binário")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		log.L.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
