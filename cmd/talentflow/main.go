package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentflow/engine/internal/api"
	"github.com/talentflow/engine/internal/cleanup"
	"github.com/talentflow/engine/internal/config"
	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/seed"
	"github.com/talentflow/engine/internal/sim"
	"github.com/talentflow/engine/internal/store"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting talentflow engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	bus := store.NewBus()

	// Select the store: a DSN picks durable Postgres, otherwise everything
	// lives in memory and resets on restart.
	var repo store.Repository
	if cfg.Database.DSN != "" {
		slog.Info("running database migrations")
		if err := store.MigrateFromDSN(initCtx, cfg.Database.DSN); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pg, err := store.NewPostgresRepository(initCtx, store.PostgresConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: int32(cfg.Database.MaxOpenConns),
			MaxIdleConns: int32(cfg.Database.MaxIdleConns),
		}, bus)
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}
		slog.Info("database connected successfully")
		repo = pg
	} else {
		slog.Info("no database configured, using in-memory store")
		repo = store.NewMemoryRepository(bus)
	}
	defer repo.Close()

	// Create context with cancellation for background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional Redis bridge fans change events out to other instances
	var bridge *store.RedisBridge
	if cfg.Redis.Address != "" {
		bridge, err = store.NewRedisBridge(initCtx, cfg.Redis.Address, cfg.Redis.Password, bus)
		if err != nil {
			slog.Error("failed to connect redis bridge", "error", err)
			os.Exit(1)
		}
		bridge.Start(ctx)
		slog.Info("redis change bridge connected", "address", cfg.Redis.Address)
	}

	// Seed demo data into empty tables
	if cfg.Seed.Enabled {
		seeder := seed.New(repo, cfg.Sim.Seed, seed.WithFixtureDir(cfg.Seed.Dir))
		if err := seeder.Run(initCtx); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	service := hiring.NewService(repo)

	simulator := sim.New(sim.Config{
		LatencyMin: cfg.Sim.LatencyMin,
		LatencyMax: cfg.Sim.LatencyMax,
		ErrorRate:  cfg.Sim.ErrorRate,
		Seed:       cfg.Sim.Seed,
	})

	// Start close-date worker
	closer := cleanup.NewCloser(repo, service, cfg.Closer.Interval)
	closer.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, service, simulator, repo, bus)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if bridge != nil {
		if err := bridge.Close(); err != nil {
			slog.Error("redis bridge close error", "error", err)
		}
	}

	slog.Info("talentflow engine stopped")
}
