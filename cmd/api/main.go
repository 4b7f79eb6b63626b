// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the hrdesk HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis (font and logo cache).
//  5. Run database migrations (idempotent).
//  6. Wire the document generator, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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
	"time"

	"google.golang.org/api/option"

	"github.com/taibuivan/hrdesk/internal/api"
	"github.com/taibuivan/hrdesk/internal/hr/company"
	"github.com/taibuivan/hrdesk/internal/hr/reference"
	"github.com/taibuivan/hrdesk/internal/platform/archive"
	"github.com/taibuivan/hrdesk/internal/platform/assets"
	"github.com/taibuivan/hrdesk/internal/platform/config"
	"github.com/taibuivan/hrdesk/internal/platform/constants"
	"github.com/taibuivan/hrdesk/internal/platform/migration"
	"github.com/taibuivan/hrdesk/internal/platform/pdf"
	pgstore "github.com/taibuivan/hrdesk/internal/platform/postgres"
	redisstore "github.com/taibuivan/hrdesk/internal/platform/redis"
	"github.com/taibuivan/hrdesk/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
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
		slog.String("page_size", cfg.PageSize),
		slog.Bool("archive_enabled", cfg.ArchiveBucket != ""),
	)

	// Root context for startup. A deadline catches misconfiguration quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; background workers stop with it.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity ───────────────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.AuthPublicKeyPath, cfg.AuthIssuer)
	must(log, err, "load auth public key")

	// ── 7. Document Generation ────────────────────────────────────────────
	loader := assets.NewLoader(assets.Config{
		RegularFontURL: cfg.FontRegularURL,
		BoldFontURL:    cfg.FontBoldURL,
		Timeout:        cfg.AssetFetchTimeout,
		CacheTTL:       cfg.AssetCacheTTL,
		MaxBytes:       cfg.AssetMaxBytes,
	},
		assets.WithCache(redisstore.NewBlobCache(rdb)),
		assets.WithLogger(log),
	)

	paper, _ := pdf.PaperSizeByName(cfg.PageSize)
	generator := reference.NewGenerator(loader,
		reference.WithPaperSize(paper),
		reference.WithNotTickedPicker(reference.NotTickedPickerFor(cfg.BlankNotTickedMode)),
		reference.WithDeclarationPage(cfg.DeclarationOwnPage),
		reference.WithGeneratorLogger(log),
	)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	companyService := company.NewService(company.NewPostgresRepository(pool), log)

	var serviceOptions []reference.ServiceOption
	if cfg.ArchiveBucket != "" {
		var clientOptions []option.ClientOption
		if cfg.ArchiveCredentialsFile != "" {
			clientOptions = append(clientOptions, option.WithCredentialsFile(cfg.ArchiveCredentialsFile))
		}

		documentArchive, err := archive.NewGCSArchive(startupCtx, cfg.ArchiveBucket, cfg.ArchivePrefix, log, clientOptions...)
		must(log, err, "open document archive")
		defer documentArchive.Close()

		serviceOptions = append(serviceOptions, reference.WithArchive(documentArchive))
	}

	referenceService := reference.NewService(reference.NewPostgresRepository(pool), generator, companyService, log, serviceOptions...)

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	server := api.NewServer(serverCtx, cfg, log, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Reference: reference.NewHandler(referenceService),
		Company:   company.NewHandler(companyService),
	})

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
