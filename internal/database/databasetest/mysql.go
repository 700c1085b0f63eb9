// Package databasetest starts a disposable MySQL server for integration tests.
package databasetest

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/user-crud/internal/database"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartMySQL runs mysql:8.0 in a container, bootstraps the schema and
// returns an open pool plus a teardown func. Skipped with -short.
func StartMySQL(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping MySQL container test in short mode")
	}

	ctx := context.Background()

	req := tc.ContainerRequest{
		Image: "mysql:8.0",
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "root",
			"MYSQL_DATABASE":      "cruddb",
			"MYSQL_USER":          "cruduser",
			"MYSQL_PASSWORD":      "crudpass",
		},
		ExposedPorts: []string{"3306/tcp"},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
			WithStartupTimeout(2 * time.Minute),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306")
	require.NoError(t, err)

	db, err := database.Open(ctx, database.Config{
		Host:            host,
		Port:            port.Int(),
		Name:            "cruddb",
		User:            "cruduser",
		Password:        "crudpass",
		MaxOpenConns:    16,
		MaxIdleConns:    4,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(ctx, db))

	teardown := func() {
		db.Close()
		_ = container.Terminate(ctx)
	}

	return db, teardown
}
