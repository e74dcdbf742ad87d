package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blog-seed/config"
	"github.com/oksasatya/blog-seed/internal/application"
	"github.com/oksasatya/blog-seed/internal/container"
	"github.com/oksasatya/blog-seed/internal/infrastructure/datastore"
	"github.com/oksasatya/blog-seed/pkg/helpers"
)

var errProductionGuard = errors.New("refusing to seed a production database; set SEED_ALLOW_PRODUCTION=true to override")

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		stop()
		helpers.LogError(logger, "seed failed", err, logrus.Fields{"driver": cfg.StoreDriver})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, out io.Writer) error {
	if cfg.IsProduction() && !cfg.SeedAllowProduction {
		return errProductionGuard
	}

	data := application.DefaultDataset()
	if cfg.SeedFile != "" {
		d, err := application.LoadDataset(cfg.SeedFile)
		if err != nil {
			return err
		}
		data = d
		logger.WithField("file", cfg.SeedFile).Info("using seed file")
	}

	stores, err := datastore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close() }()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStores(stores)

	if cfg.SessionPurgeEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}
	if cfg.SearchReindexEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass, nil)
		if err != nil {
			return fmt.Errorf("init elasticsearch client: %w", err)
		}
		container.SetES(es)
	}

	logger.WithField("driver", stores.Driver).Info("seeding database")
	sum, err := container.BuildSeedService(data).Run(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, sum.String())
	return err
}
