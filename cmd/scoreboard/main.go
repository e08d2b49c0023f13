package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "scoreboard/internal/adapter/http"
	"scoreboard/internal/adapter/memory"
	"scoreboard/internal/adapter/postgres"
	sbredis "scoreboard/internal/adapter/redis"
	"scoreboard/internal/adapter/sqlite"
	"scoreboard/internal/app"
	"scoreboard/internal/config"
	"scoreboard/internal/domain"
	"scoreboard/internal/metrics"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("exit", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.Production {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(cfg config.Config, logger *slog.Logger) error {
	repo, closeRepo, err := openScoreRepo(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeRepo.Close() }()

	registry, closeRegistry, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeRegistry.Close() }()

	m := metrics.NewRegistry()
	sessionSvc := app.NewSessionService(registry)
	scoreSvc := app.NewScoreService(repo, sessionSvc)
	m.RegisterSessionGauge(func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := sessionSvc.OnlineCount(ctx)
		if err != nil {
			return 0
		}
		return float64(n)
	})

	h := adapthttp.New(sessionSvc, scoreSvc, m, logger).
		WithTrustProxy(cfg.TrustProxy).
		WithCORSOrigin(cfg.CORSOrigin).
		Handler()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr(), "driver", cfg.Driver(), "sessions", cfg.SessionBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openScoreRepo(cfg config.Config) (domain.ScoreRepository, io.Closer, error) {
	switch cfg.Driver() {
	case config.DriverPostgres:
		connStr, err := postgres.WithSSLMode(cfg.DatabaseURL, cfg.SSLMode())
		if err != nil {
			return nil, nil, err
		}
		db, err := postgres.Open(connStr)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return memory.New(), nopCloser{}, nil
	}
}

func openRegistry(cfg config.Config) (domain.SessionRegistry, io.Closer, error) {
	if cfg.SessionBackend != config.SessionsRedis {
		return memory.NewRegistry(), nopCloser{}, nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	r := sbredis.NewRegistry(client, cfg.RedisKey)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return r, client, nil
}
