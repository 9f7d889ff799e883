// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the PostgreSQL catalogue schema with golang-migrate.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. The SQLite backend builds
// its tables from the gorm models instead, so only the postgres driver is
// registered here.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// schemes golang-migrate does not understand but that name the same database.
var postgresSchemes = []string{"postgres://", "postgresql://"}

const pgx5Scheme = "pgx5://"

// Runner owns one golang-migrate instance bound to a database and a directory of .sql files.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// NewRunner opens the migrations in dir against the database at dsn.
func NewRunner(dsn, dir string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+dir, MigrateURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}

	migrator.Log = &slogBridge{logger: logger}
	return &Runner{migrator: migrator, logger: logger}, nil
}

// Version returns the applied schema version; zero means none.
func (runner *Runner) Version() (uint, bool, error) {
	version, dirty, err := runner.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to read version: %w", err)
	}
	return version, dirty, nil
}

/*
Up applies every pending migration.

Description: A dirty schema (a previous run stopped halfway) is refused so that
an operator can repair it; an up-to-date schema is not an error.
*/
func (runner *Runner) Up() error {
	from, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	if err := runner.migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("schema_up_to_date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := runner.Version()
	runner.logger.Info("schema_migrated",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// Close releases the source and database handles.
func (runner *Runner) Close() error {
	sourceErr, dbErr := runner.migrator.Close()
	return errors.Join(sourceErr, dbErr)
}

// RunUp opens a [Runner], applies pending migrations and closes it.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	runner, err := NewRunner(dsn, dir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	return runner.Up()
}

// MigrateURL rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme.
// Other values are returned unchanged.
func MigrateURL(dsn string) string {
	for _, scheme := range postgresSchemes {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return pgx5Scheme + rest
		}
	}
	return dsn
}

// slogBridge adapts migrate.Logger to slog at debug level.
type slogBridge struct {
	logger *slog.Logger
}

func (bridge *slogBridge) Printf(format string, args ...any) {
	bridge.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (bridge *slogBridge) Verbose() bool {
	return bridge.logger.Enabled(context.Background(), slog.LevelDebug)
}
