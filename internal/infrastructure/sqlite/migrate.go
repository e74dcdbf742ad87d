package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// RunMigrations applies (or, with down, reverts) every migration in migrationsDir
// to the database at path. A nil logger discards output.
func RunMigrations(path string, migrationsDir string, down bool, logger *logrus.Logger) error {
	if path == "" {
		path = defaultPath
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	dir, err := filepath.Abs(migrationsDir)
	if err != nil {
		return err
	}

	db, err := openDB(context.Background(), path)
	if err != nil {
		return err
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "sqlite", driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	// closes db as well
	defer func() { _, _ = m.Close() }()

	if down {
		logger.WithField("path", path).Info("reverting migrations...")
		err = m.Down()
	} else {
		logger.WithField("path", path).Info("running migrations...")
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
