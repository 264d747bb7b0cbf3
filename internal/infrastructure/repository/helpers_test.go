package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/manorfm/oauthstore/internal/infrastructure/config"
	"github.com/manorfm/oauthstore/internal/infrastructure/database"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var errUnique = &pgconn.PgError{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"}

// setupMockDB wraps a pgxmock pool in the database layer used by the repositories
func setupMockDB(t *testing.T) (*database.Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return database.NewWithPool(mock, zap.NewNop()), mock
}

func testConfig() *config.Config {
	return config.NewConfig()
}

func fixedNow() time.Time {
	return testNow
}

// sequenceIDs hands out ids in order and fails once they run out
func sequenceIDs(ids ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		if i >= len(ids) {
			return "", errors.New("no more ids")
		}
		id := ids[i]
		i++
		return id, nil
	}
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
