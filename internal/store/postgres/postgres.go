package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// migration driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goto/folio/config"
)

const (
	maxConnLifetime   = 30 * time.Minute
	healthCheckPeriod = time.Minute
)

//go:embed migrations/*.sql
var migrationFs embed.FS

// Open creates a connection pool sized by the db config
func Open(conf config.DBConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid db dsn: %w", err)
	}

	cfg.MinConns = int32(conf.MinOpenConnection)
	cfg.MaxConns = int32(conf.MaxOpenConnection)
	cfg.MaxConnLifetime = maxConnLifetime
	cfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return pool, nil
}

// Migrate applies every pending up migration
func Migrate(dsn string) error {
	m, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running up migrations: %w", err)
	}
	return nil
}

// Rollback reverts the given number of applied migrations
func Rollback(dsn string, count int) error {
	if count < 1 {
		return fmt.Errorf("rollback count should be at least 1, got %d", count)
	}

	m, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-count); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error rolling back migrations: %w", err)
	}
	return nil
}

// Version reports the current schema version and whether it is dirty
func Version(dsn string) (uint, bool, error) {
	m, err := NewMigrator(dsn)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func NewMigrator(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFs, "migrations")
	if err != nil {
		return nil, fmt.Errorf("error reading migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrator: %w", err)
	}
	return m, nil
}
