// Package pgtest prepares a migrated and empty database for repository tests.
package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goto/folio/config"
	"github.com/goto/folio/internal/store/postgres"
)

const EnvDSN = "TEST_FOLIO_DB_DSN"

// Pool returns a pool on the test database, skipping the test when no dsn is configured
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	if err := postgres.Migrate(dsn); err != nil {
		t.Fatalf("unable to migrate test database: %v", err)
	}

	pool, err := postgres.Open(config.DBConfig{DSN: dsn, MinOpenConnection: 1, MaxOpenConnection: 5})
	if err != nil {
		t.Fatalf("unable to open test database: %v", err)
	}
	t.Cleanup(pool.Close)

	TruncateTables(t, pool)
	return pool
}

func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `TRUNCATE TABLE blog_revision, blog_reference, blog_image, blog CASCADE`)
	if err != nil {
		t.Fatalf("unable to truncate tables: %v", err)
	}
}
