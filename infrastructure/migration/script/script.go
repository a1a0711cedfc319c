package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/gzlb/dash/infrastructure/database/postgres"
	"github.com/gzlb/dash/infrastructure/migration"
	"github.com/gzlb/dash/infrastructure/repository"
	"github.com/gzlb/dash/internal/config"
	"github.com/gzlb/dash/internal/usecases/converting"
	"github.com/gzlb/dash/pkg/log"
)

// Aplica as migrations e grava (ou atualiza) as taxas de câmbio informadas.
//
//	go run ./infrastructure/migration/script --rates "USD:1.0,EUR:1.08"
func main() {
	rates := pflag.String("rates", "", "taxas no formato CODE:RATE separadas por vírgula (padrão: CURRENCY_RATES)")
	skipMigrate := pflag.Bool("skip-migrate", false, "não executa as migrations antes de gravar")
	pflag.Parse()

	if err := log.Configure("info"); err != nil {
		log.L.WithError(err).Warn("Nível de log inválido")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}

	raw := *rates
	if raw == "" {
		raw = cfg.Analysis.CurrencyRates
	}

	parsed, err := converting.ParseRates(raw)
	if err != nil {
		log.L.WithError(err).Fatal("Taxas inválidas")
	}

	if !*skipMigrate {
		if err := migration.Up(cfg.Database.DSN); err != nil {
			log.L.WithError(err).Fatal("Erro ao executar migrations")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return repository.NewCurrencyRateRepository(tx).SaveOrUpdate(ctx, parsed)
	})
	if err != nil {
		log.L.WithError(err).Error("Erro ao gravar taxas de câmbio")
		os.Exit(1)
	}

	log.L.WithFields(log.Fields{
		"rates":    len(parsed),
		"duration": time.Since(startTime).String(),
	}).Info("Taxas de câmbio gravadas com sucesso")
}
