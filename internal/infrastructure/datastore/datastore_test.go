package datastore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blog-seed/config"
	"github.com/oksasatya/blog-seed/internal/domain/repository"
	"github.com/oksasatya/blog-seed/internal/infrastructure/sqlite"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blog.db")

	require.NoError(t, sqlite.RunMigrations(path, "../../../db/migrations/sqlite", false, nil))

	stores, err := Open(ctx, &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	assert.Equal(t, config.DriverSQLite, stores.Driver)
	n, err := stores.Users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "mongo"})
	assert.EqualError(t, err, `unknown store driver "mongo"`)
}

func TestOpenPostgresUnreachable(t *testing.T) {
	cfg := &config.Config{
		StoreDriver:   config.DriverPostgres,
		DBHost:        "127.0.0.1",
		DBPort:        "1",
		DBUser:        "postgres",
		DBPassword:    "postgres",
		DBName:        "blog",
		DBSSLMode:     "disable",
		DBMaxConns:    1,
		DBMaxConnLife: time.Hour,
	}
	_, err := Open(context.Background(), cfg)
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestCloseNil(t *testing.T) {
	var s *Stores
	assert.NoError(t, s.Close())
}
