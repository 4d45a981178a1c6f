//go:build integration || !unit

package sde

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testPostgresContainer holds a running SDE-schema Postgres instance
// for integration tests, mirroring the teacher's
// internal/database.TestPostgresContainer shape.
type testPostgresContainer struct {
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
}

func setupPostgresContainer(t *testing.T) *testPostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("eve_attrengine_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("sde: start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("sde: container connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("sde: connect to container: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("sde: ping container: %v", err)
	}

	tc := &testPostgresContainer{container: container, pool: pool}
	t.Cleanup(func() {
		tc.pool.Close()
		tc.container.Terminate(context.Background())
	})
	return tc
}

// createSchema lays down the minimal columns PostgresStore's queries
// read, sized for one fixture row per table.
func (tc *testPostgresContainer) createSchema(t *testing.T) {
	t.Helper()
	const schema = `
		CREATE TABLE types (
			id BIGINT PRIMARY KEY,
			group_id BIGINT NOT NULL,
			category_id INTEGER NOT NULL,
			required_skills JSONB
		);
		CREATE TABLE type_dogma (
			id BIGINT PRIMARY KEY REFERENCES types(id),
			dogma_attributes JSONB,
			dogma_effects JSONB
		);
		CREATE TABLE dogma_attributes (
			id BIGINT PRIMARY KEY,
			default_value DOUBLE PRECISION,
			stackable BOOLEAN NOT NULL DEFAULT false,
			high_is_good BOOLEAN NOT NULL DEFAULT false,
			max_attribute_id BIGINT
		);
		CREATE TABLE dogma_effects (
			id BIGINT PRIMARY KEY,
			category_id INTEGER NOT NULL,
			modifier_info JSONB
		);`
	if _, err := tc.pool.Exec(context.Background(), schema); err != nil {
		t.Fatalf("sde: create schema: %v", err)
	}
}
