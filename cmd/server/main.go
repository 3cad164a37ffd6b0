package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/seldt/wellspring/internal/cache"
	"github.com/seldt/wellspring/internal/caldate"
	"github.com/seldt/wellspring/internal/config"
	"github.com/seldt/wellspring/internal/domain/activity"
	"github.com/seldt/wellspring/internal/refresh"
	"github.com/seldt/wellspring/internal/repository"
	"github.com/seldt/wellspring/internal/sqlite"
	"github.com/seldt/wellspring/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	loc, err := time.LoadLocation(cfg.Time.Zone)
	if err != nil {
		logger.Error("unknown time zone", "zone", cfg.Time.Zone, "error", err)
		os.Exit(1)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	recordStore := sqlite.NewRecordStore(db)
	snapshot := cache.NewSnapshot()
	defer snapshot.Clear()

	synchronizer := activity.NewSynchronizer(caldate.NewLocalizer(loc), logger)
	service := activity.NewService(recordStore, snapshot, synchronizer,
		repository.ClockFunc(time.Now), logger)

	if cfg.Refresh.Enabled {
		refresher, err := refresh.New(service, cfg.Refresh.Owner, loc, logger)
		if err != nil {
			logger.Error("failed to schedule rollover", "error", err)
			os.Exit(1)
		}
		refresher.Start()
		defer refresher.Stop()
	}

	router := transport.NewRouter(service, logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting http server", "addr", addr, "zone", cfg.Time.Zone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureDBDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
