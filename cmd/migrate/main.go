package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blog-seed/config"
	"github.com/oksasatya/blog-seed/internal/infrastructure/postgres"
	"github.com/oksasatya/blog-seed/internal/infrastructure/sqlite"
	"github.com/oksasatya/blog-seed/pkg/helpers"
)

// usage: migrate [up|down]
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, os.Stderr)

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}
	if direction != "up" && direction != "down" {
		logger.Fatalf("unknown direction %q (want up or down)", direction)
	}

	if err := run(cfg, direction == "down", logger); err != nil {
		helpers.LogError(logger, "migration failed", err, logrus.Fields{"driver": cfg.StoreDriver})
		os.Exit(1)
	}
	logger.WithField("driver", cfg.StoreDriver).Infof("migrations %s complete", direction)
}

func run(cfg *config.Config, down bool, logger *logrus.Logger) error {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return postgres.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsPath(), down, logger)
	case config.DriverSQLite:
		return sqlite.RunMigrations(cfg.SQLitePath, cfg.MigrationsPath(), down, logger)
	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
