// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the LocalLibrary catalogue HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the entity store (PostgreSQL with migrations, or SQLite).
//  4. Connect to Redis when configured, for the shared rate limiter.
//  5. Wire the catalog handler.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/locallibrary/internal/api"
	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	"github.com/taibuivan/locallibrary/internal/platform/migration"
	pgstore "github.com/taibuivan/locallibrary/internal/platform/postgres"
	redisstore "github.com/taibuivan/locallibrary/internal/platform/redis"
	"github.com/taibuivan/locallibrary/internal/platform/sqlite"
)

// store is the opened entity store together with its probe and teardown.
type store struct {
	repository catalog.Repository
	name       string
	ping       api.HealthCheck
	close      func()
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("db_driver", cfg.DBDriver),
	)

	// Bounded so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// Lives until shutdown; stops the in-memory limiter's janitor.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Entity Store ───────────────────────────────────────────────────
	entities, err := openStore(startupCtx, cfg, log)
	must(log, err, "open entity store")
	defer entities.close()

	// ── 4. Rate Limiter (Redis optional) ──────────────────────────────────
	var (
		limiter    middleware.Limiter
		checkCache api.HealthCheck
	)

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		window := constants.RateLimitWindow
		limiter = redisstore.NewRateLimiter(rdb, cfg.RateLimitBurst, window)
		checkCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		limiter = middleware.NewMemoryLimiter(rootCtx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		DatabaseName:  entities.name,
		CheckDatabase: entities.ping,
		CheckCache:    checkCache,
	}, log)

	catalogService := catalog.NewService(entities.repository, log)
	catalogHandler := catalog.NewHandler(catalogService)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalogHandler,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

/*
openStore connects the backend selected by DB_DRIVER.

Description: PostgreSQL gets its schema from the SQL migrations; SQLite gets it
from the gorm models.
*/
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*store, error) {
	if cfg.DBDriver == config.DriverSQLite {
		db, err := sqlite.Open(ctx, sqlite.FileDSN(cfg.SQLitePath), log)
		if err != nil {
			return nil, err
		}
		if err := catalog.AutoMigrate(db); err != nil {
			_ = sqlite.Close(db)
			return nil, err
		}

		return &store{
			repository: catalog.NewGormRepository(db),
			name:       config.DriverSQLite,
			ping:       func(ctx context.Context) error { return sqlite.Ping(ctx, db) },
			close: func() {
				if err := sqlite.Close(db); err != nil {
					log.Error("sqlite_close_failed", slog.Any("error", err))
				}
			},
		}, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		pool.Close()
		return nil, err
	}

	return &store{
		repository: catalog.NewPostgresRepository(pool),
		name:       config.DriverPostgres,
		ping:       func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		close: func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		},
	}, nil
}

// newLogger builds the process-wide JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
