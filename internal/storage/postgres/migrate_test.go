package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benefitsnav/benefits-backend/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "pw", Name: "benefits"}
	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=benefits sslmode=disable", DSN(cfg))

	cfg.DSN = "postgres://app@db/benefits"
	assert.Equal(t, "postgres://app@db/benefits", DSN(cfg))
}

func TestEmbeddedMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p, err := newMigrator(db)
	require.NoError(t, err)

	sources := p.ListSources()
	require.Len(t, sources, 2)
	assert.Equal(t, int64(1), sources[0].Version)
	assert.Equal(t, int64(2), sources[1].Version)
}

// TestMigrate_Postgres runs against a real database and is skipped unless
// TEST_DB_DSN is set.
func TestMigrate_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	db, err := NewConnection(context.Background(), &config.DatabaseConfig{DSN: dsn})
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(context.Background(), db)
	require.NoError(t, err)

	// second run is a no-op
	applied, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, applied)
}
