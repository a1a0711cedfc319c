package migration

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/gzlb/dash/pkg/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Up aplica as migrations pendentes usando uma conexão própria, separada do pool da API
func Up(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errors.Wrap(err, "abrir conexão para migrations")
	}
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return errors.Wrap(err, "criar driver postgres para migrations")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "criar source iofs")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "criar instância de migrate")
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.L.Debug("migration: banco já está atualizado")
			return nil
		}
		return errors.Wrap(err, "executar migrations")
	}

	if version, dirty, err := m.Version(); err == nil {
		log.L.WithFields(log.Fields{"version": version, "dirty": dirty}).Info("migration: migrations aplicadas")
	}

	return nil
}
