package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"fintrack/internal/config"
	"fintrack/internal/logger"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// NewMigrator builds a golang-migrate instance for the configured driver
// using the SQL files embedded in the binary. Callers must Close it.
func NewMigrator(cfg *Config) (*migrate.Migrate, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		src, err := iofs.New(migrationsFS, "migrations/sqlite")
		if err != nil {
			return nil, fmt.Errorf("create iofs source: %w", err)
		}

		// A separate connection keeps migrations from interfering with GORM's pool.
		migrateDB, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open migration database: %w", err)
		}

		driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
		if err != nil {
			_ = migrateDB.Close()
			return nil, fmt.Errorf("create sqlite driver: %w", err)
		}

		m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
		if err != nil {
			return nil, fmt.Errorf("create migrate instance: %w", err)
		}
		return m, nil

	case config.DriverPostgres:
		src, err := iofs.New(migrationsFS, "migrations/postgres")
		if err != nil {
			return nil, fmt.Errorf("create iofs source: %w", err)
		}

		m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrationURL())
		if err != nil {
			return nil, fmt.Errorf("create migrate instance: %w", err)
		}
		return m, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// RunMigrations applies pending SQL migrations.
func (m *Manager) RunMigrations() error {
	log := logger.Named("database")
	log.Infow("Running database migrations...", "driver", m.config.Driver)

	mig, err := NewMigrator(m.config)
	if err != nil {
		return err
	}
	defer CloseMigrator(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.Infow("Database migrations completed successfully", "version", version, "dirty", dirty)
	return nil
}

// CloseMigrator closes both sides of a migrator and logs failures.
func CloseMigrator(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}
