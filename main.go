package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ubigu/hedgehog-map/internal/config"
	"github.com/ubigu/hedgehog-map/internal/db"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
	"github.com/ubigu/hedgehog-map/internal/observability"
	"github.com/ubigu/hedgehog-map/internal/server"
	"github.com/ubigu/hedgehog-map/internal/store"
)

// repository is what the server needs from either store.
type repository interface {
	hedgehog.Repository
	server.Pinger
	Close() error
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	svc := hedgehog.NewService(repo, logger)
	h := hedgehog.NewHandler(svc, logger, metrics.HedgehogsCreated)

	srv := server.New(server.Options{
		Addr:                cfg.HTTPAddr,
		CORSOrigins:         cfg.CORSOrigins,
		CreateRatePerMinute: cfg.CreateRatePerMinute,
		Registry:            reg,
	}, h, repo, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := repo.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("shutdown complete")
}

func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository, error) {
	if cfg.DBDriver == config.DriverSQLite {
		s, err := store.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", "path", cfg.SQLitePath)
		return s, nil
	}

	gdb, err := db.Connect(cfg.DatabaseURL, db.DefaultPool, logger)
	if err != nil {
		return nil, err
	}
	p := store.NewPostgis(gdb, logger)
	if err := p.Init(ctx); err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}
