package container

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/blog-seed/config"
	"github.com/oksasatya/blog-seed/internal/application"
	"github.com/oksasatya/blog-seed/internal/infrastructure/datastore"
	"github.com/oksasatya/blog-seed/internal/infrastructure/sqlite"
)

func TestBuildSeedService(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blog.db")
	require.NoError(t, sqlite.RunMigrations(path, "../../db/migrations/sqlite", false, nil))

	cfg := &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: path, BcryptCost: bcrypt.MinCost, ESUsersIndex: "users"}
	stores, err := datastore.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	SetConfig(cfg)
	SetStores(stores)
	SetLogger(nil)
	SetRedis(nil)
	SetES(nil)

	svc := BuildSeedService(application.DefaultDataset())
	assert.Nil(t, svc.Sessions)
	assert.Nil(t, svc.Index)
	assert.Equal(t, bcrypt.MinCost, svc.BcryptCost)

	sum, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Created 3 users and 5 posts!", sum.String())

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })
	SetRedis(rdb)
	assert.NotNil(t, BuildSeedService(application.DefaultDataset()).Sessions)
	SetRedis(nil)
}
