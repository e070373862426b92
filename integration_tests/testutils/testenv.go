package testutils

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Black-And-White-Club/tourney-bot/integration_tests/containers"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// TestEnvironment is a migrated Postgres container for one test.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
	DSN         string
}

// Options select the schemas a test needs.
type Options struct {
	River bool
}

// NewTestEnvironment starts Postgres and runs migrations. It skips in
// -short mode and registers cleanup on t.
func NewTestEnvironment(t *testing.T, opts Options) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	db := bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db, dsn, opts.River))

	return &TestEnvironment{Ctx: ctx, PgContainer: pg, DB: db, DSN: dsn}
}

// Reset empties the tables so a subtest starts from nothing.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	require.NoError(t, CleanupDatabase(env.Ctx, env.DB))
}
