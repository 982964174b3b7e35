package migrations

import (
	"embed"
	"errors"

	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

//go:embed sql/*.sql
var sqlFiles embed.FS

// RunMigrations applies every pending up migration against dbURL
func RunMigrations(dbURL string) error {
	log.Info("RunMigrations: applying schema migrations")
	src, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info("RunMigrations: schema up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
