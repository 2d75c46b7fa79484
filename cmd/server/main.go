// Command server runs the NoteVault HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dharsanguruparan/notevault/internal/api"
	"github.com/dharsanguruparan/notevault/internal/auth"
	"github.com/dharsanguruparan/notevault/internal/blob"
	"github.com/dharsanguruparan/notevault/internal/config"
	"github.com/dharsanguruparan/notevault/internal/database"
	"github.com/dharsanguruparan/notevault/internal/notes"
	"github.com/dharsanguruparan/notevault/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	store, err := blob.NewMinioStore(cfg, logger)
	if err != nil {
		logger.Error("init blob store", "error", err)
		os.Exit(1)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		logger.Error("ensure bucket", "error", err)
		os.Exit(1)
	}

	noteSvc := notes.NewService(repository.NewNotesRepository(pool), store, logger)
	authSvc := auth.NewService(auth.NewPostgresCredentials(pool))

	srv := api.New(cfg, noteSvc, authSvc, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
