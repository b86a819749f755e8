// Package testdb provides utilities for integration tests that run against
// a real PostgreSQL database. Tests using it are skipped unless a database
// URL is configured in the environment.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/userbook/userbook/migrations"
)

// connectTimeout bounds the initial ping of the test database.
const connectTimeout = 5 * time.Second

// URL returns the database URL for integration tests. It checks
// DATABASE_URL and USERBOOK_TEST_DB_URL in that order, returning the first
// non-empty value.
func URL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("USERBOOK_TEST_DB_URL")
}

// Connect opens the test database and applies the schema migrations,
// skipping the test when no database URL is configured. The connection is
// closed automatically when the test finishes.
func Connect(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skip("integration test requires DATABASE_URL or USERBOOK_TEST_DB_URL")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "test database is not reachable")

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "."))

	return db
}

// ResetUsers empties the users table so each test starts from a clean slate.
func ResetUsers(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE users RESTART IDENTITY")
	require.NoError(t, err)
}
