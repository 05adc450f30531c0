package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/missionparty/missionparty/internal/config"
	"github.com/missionparty/missionparty/internal/database"
	"github.com/missionparty/missionparty/internal/game"
	"github.com/missionparty/missionparty/internal/migrations"
	"github.com/missionparty/missionparty/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.HostPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing host password: %w", err)
	}

	// --- Game session ---
	store := server.NewSQLiteStore(db, logger)
	broker := server.NewBroker()
	session := server.NewSession(game.NewReducer(nil, logger), store, broker, logger)
	session.Restore(ctx)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Session:          session,
		Broker:           broker,
		Hosts:            store,
		DB:               db,
		HostPasswordHash: passwordHash,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
