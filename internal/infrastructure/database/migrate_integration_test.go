package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manorfm/oauthstore/internal/infrastructure/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrator_PrepareRevert(t *testing.T) {
	dsn := dbtest.DSN(t)
	ctx := context.Background()
	m := NewMigrator(dsn, zap.NewNop())

	require.NoError(t, m.Prepare(ctx))
	require.NoError(t, m.Prepare(ctx), "prepare must be a no-op when the schema is current")

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(6), version)
	assert.False(t, dirty)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	db := NewWithPool(pool, zap.NewNop())
	defer db.Close()

	var indexes int
	err = db.QueryRow(ctx, `
		SELECT COUNT(*) FROM pg_indexes
		WHERE indexname IN ('oauth_client_index', 'oauth_user_index', 'oauth_code_index',
			'oauth_access_token_index', 'oauth_refresh_token_index', 'oauth_resource_server_index')
	`).Scan(&indexes)
	require.NoError(t, err)
	assert.Equal(t, 6, indexes)

	require.NoError(t, m.Revert(ctx))

	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	var tables int
	err = db.QueryRow(ctx, `
		SELECT COUNT(*) FROM pg_tables
		WHERE tablename LIKE 'oauth\_%' AND tablename <> 'oauth_schema_migrations'
	`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 0, tables)
}
