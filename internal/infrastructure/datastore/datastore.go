package datastore

import (
	"context"
	"fmt"

	"github.com/oksasatya/blog-seed/config"
	"github.com/oksasatya/blog-seed/internal/domain/repository"
	"github.com/oksasatya/blog-seed/internal/infrastructure/postgres"
	"github.com/oksasatya/blog-seed/internal/infrastructure/sqlite"
)

// Stores bundles the repositories of one opened backend.
type Stores struct {
	Driver string
	Users  repository.UserRepository
	Posts  repository.PostRepository

	close func() error
}

// Close releases the underlying pool or file handle.
func (s *Stores) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Driver: cfg.StoreDriver,
			Users:  postgres.NewUserRepository(pool),
			Posts:  postgres.NewPostRepository(pool),
			close:  func() error { pool.Close(); return nil },
		}, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Driver: cfg.StoreDriver,
			Users:  store.Users(),
			Posts:  store.Posts(),
			close:  store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
