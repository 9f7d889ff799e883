// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded SQLite store through gorm.
//
// # Architecture
//
// This package is part of the Infrastructure layer, next to [postgres]. It owns
// the physical handle only; table definitions live with the repository that
// uses them.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// slowQueryThreshold marks a statement as slow in the gorm logger.
	slowQueryThreshold = 200 * time.Millisecond
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// FileDSN builds a DSN for an on-disk database with foreign keys enforced.
func FileDSN(path string) string {
	return "file:" + path + "?_foreign_keys=1"
}

// MemoryDSN builds a DSN for a named in-memory database with foreign keys enforced.
// Every handle opened with the same name shares one database.
func MemoryDSN(name string) string {
	return "file:" + url.PathEscape(name) + "?mode=memory&cache=shared&_foreign_keys=1"
}

// Open connects to SQLite and validates the handle.
//
// SQLite allows one writer at a time, so the pool is capped at a single
// connection; concurrent readers queue on it instead of failing with SQLITE_BUSY.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(&gormWriter{logger: logger}, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to access handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := Ping(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Info("sqlite database opened")
	return db, nil
}

// Ping verifies that the SQLite handle is usable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter adapts gorm's logger writer to slog.
type gormWriter struct {
	logger *slog.Logger
}

// Printf implements gormlogger.Writer.
func (w *gormWriter) Printf(format string, args ...any) {
	w.logger.Warn(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
