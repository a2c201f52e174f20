package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/pkg/postgres"
)

var (
	testDBOnce sync.Once
	testDB     *pgxpool.Pool
	testDBErr  error
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	testDBOnce.Do(func() {
		testDBErr = postgres.UpMigrations(dsn)
		if testDBErr != nil {
			return
		}

		testDB, testDBErr = postgres.Connect(context.Background(), dsn, 5)
	})
	require.NoError(t, testDBErr)

	cleanupDatabase(t, testDB)

	return testDB
}

func cleanupDatabase(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	for _, table := range []string{"ticket_comments", "tickets", "employees", "users"} {
		_, err := db.Exec(context.Background(), "DELETE FROM "+table)
		if err != nil {
			t.Logf("Warning: failed to cleanup table %s: %v", table, err)
		}
	}
}
