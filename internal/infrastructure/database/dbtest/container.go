// Package dbtest provides a throwaway PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DSNEnv points the integration tests at an existing database instead of a container
const DSNEnv = "OAUTHSTORE_TEST_DSN"

const (
	image    = "postgres:15-alpine"
	user     = "test"
	password = "test"
	dbName   = "test"
)

// DSN returns a postgres:// URL for an empty database. The database named by
// DSNEnv is used when set; otherwise a container is started for the test and
// terminated when it ends. Tests are skipped in -short mode and when no
// container runtime is reachable.
func DSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn
	}
	if testing.Short() {
		t.Skip("skipping PostgreSQL container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       dbName,
		},
		// The server restarts once after initdb, so wait for the second ready line
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		user, password, net.JoinHostPort(host, port.Port()), dbName)
}
