package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hieuluvjingliu/GardenBred/internal/breed"
	"github.com/hieuluvjingliu/GardenBred/internal/config"
	"github.com/hieuluvjingliu/GardenBred/internal/database"
	"github.com/hieuluvjingliu/GardenBred/internal/database/postgres"
	"github.com/hieuluvjingliu/GardenBred/internal/game"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
	"github.com/hieuluvjingliu/GardenBred/internal/push"
	"github.com/hieuluvjingliu/GardenBred/internal/repository"
	"github.com/hieuluvjingliu/GardenBred/internal/repository/memory"
	"github.com/hieuluvjingliu/GardenBred/internal/scheduler"
	"github.com/hieuluvjingliu/GardenBred/internal/server"
	"github.com/hieuluvjingliu/GardenBred/internal/session"
	"github.com/hieuluvjingliu/GardenBred/internal/worker"
)

const (
	dbMaxConns       = 10
	dbMaxIdle        = 5 * time.Minute
	dbMaxLife        = 30 * time.Minute
	workerCount      = 4
	workerQueueSize  = 16
	shutdownDeadline = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	store, dbPool, err := buildStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	if dbPool != nil {
		defer dbPool.Close()
	}

	breeds, err := breed.NewFileProvider(cfg.BreedMapPath)
	if err != nil {
		slog.Error("Failed to load breed map", "path", cfg.BreedMapPath, "error", err)
		os.Exit(1)
	}
	watcher, err := breed.NewWatcher(cfg.BreedMapPath, breeds)
	if err != nil {
		slog.Warn("Breed map watcher unavailable, hot reload disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	hub := push.NewHub(cfg.PushDebounce)
	gameSvc := game.NewService(store, breeds, hub)
	hub.SetSource(gameSvc.FetchState)

	sessions, err := session.NewManager(store)
	if err != nil {
		slog.Error("Failed to initialize session manager", "error", err)
		os.Exit(1)
	}

	pool := worker.NewPool(workerCount, workerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.TickInterval, game.NewSweepJob(gameSvc))

	srv := server.NewServer(cfg.Port, dbPool, gameSvc, sessions, hub)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		slog.Error("Server stopped unexpectedly", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	sched.Stop()
	pool.Stop()
	hub.Stop()
	slog.Info("Shutdown complete")
}

// buildStore selects the persistence backend. The pool is nil for the
// in-memory store.
func buildStore(cfg *config.Config) (repository.Store, database.Pool, error) {
	if cfg.Store == "memory" {
		return memory.NewStore(), nil, nil
	}

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		return nil, nil, err
	}
	pool, err := database.NewPool(connString, dbMaxConns, dbMaxIdle, dbMaxLife)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewStore(pool), pool, nil
}
