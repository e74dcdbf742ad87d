package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blog-seed/config"
	"github.com/oksasatya/blog-seed/internal/infrastructure/sqlite"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunSQLiteUpAndDown(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreDriver:   config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "data", "blog.db"),
		MigrationsDir: "../../db/migrations",
	}

	require.NoError(t, run(cfg, false, quietLogger()))
	require.NoError(t, run(cfg, false, quietLogger()))

	store, err := sqlite.Open(ctx, cfg.SQLitePath)
	require.NoError(t, err)
	n, err := store.Posts().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, store.Close())

	require.NoError(t, run(cfg, true, quietLogger()))

	store, err = sqlite.Open(ctx, cfg.SQLitePath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.Users().Count(ctx)
	assert.Error(t, err)
}

func TestRunUnknownDriver(t *testing.T) {
	err := run(&config.Config{StoreDriver: "mongo"}, false, quietLogger())
	assert.EqualError(t, err, `unknown store driver "mongo"`)
}
