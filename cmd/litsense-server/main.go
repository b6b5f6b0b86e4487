package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/app"
	"github.com/tsawler/litsense/internal/cache"
	"github.com/tsawler/litsense/internal/config"
	"github.com/tsawler/litsense/internal/domain"
	"github.com/tsawler/litsense/internal/engine"
	"github.com/tsawler/litsense/internal/httpserver"
	"github.com/tsawler/litsense/internal/logging"
	"github.com/tsawler/litsense/internal/postgres"
	"github.com/tsawler/litsense/internal/version"
)

func runGracefulShutdown(srv *httpserver.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupAnalyzer(cfg *config.Config) *litsense.Analyzer {
	analyzer, err := engine.New(cfg.Analyzer(), slog.Default())
	if err != nil {
		slog.Error("Failed to build analyzer", "error", err)
		os.Exit(1)
	}
	return analyzer
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "version", version.Get().Version, "port", cfg.Port)

	analyzer := setupAnalyzer(cfg)

	// Cache and history are optional; leave the interfaces nil when unset.
	var (
		resultCache domain.ResultCache
		history     domain.AnalysisRepository
		checks      []httpserver.HealthCheck
	)

	if cfg.RedisURL != "" {
		redisClient := setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()

		c := cache.New(redisClient, cfg.CacheTTL)
		resultCache = c
		checks = append(checks, httpserver.HealthCheck{Name: "redis", Check: c.Ping})
	} else {
		slog.Info("REDIS_URL not set, result cache disabled")
	}

	if cfg.DatabaseURL != "" {
		pool := setupDB(cfg)
		defer pool.Close()

		repo := postgres.NewAnalysisRepo(pool)
		history = repo
		checks = append(checks, httpserver.HealthCheck{Name: "postgres", Check: repo.Ping})
	} else {
		slog.Info("DATABASE_URL not set, analysis history disabled")
	}

	appSvc := app.NewService(analyzer, resultCache, history, clock)

	srv := httpserver.NewServer(cfg, appSvc,
		httpserver.WithHealthChecks(checks...),
		httpserver.WithClock(clock))

	done := runGracefulShutdown(srv, cfg.ShutdownTimeout)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
