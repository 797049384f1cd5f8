package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/orderplace/internal/cli"
	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/config"
	"github.com/Veraticus/orderplace/internal/service"
	"github.com/Veraticus/orderplace/internal/session"
	"github.com/Veraticus/orderplace/internal/storage"
	"github.com/google/uuid"
)

// initStorage opens the document store selected by settings.
func initStorage(ctx context.Context, settings config.Settings) (service.Store, error) {
	switch settings.Backend {
	case config.BackendSQLite:
		store, err := storage.NewSQLiteStore(settings.SQLitePath)
		if err != nil {
			return nil, err
		}

		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil

	default:
		var codec storage.Codec = storage.JSONCodec{}
		if settings.Format == config.FormatYAML {
			codec = storage.YAMLCodec{}
		}
		return storage.NewFileStore(settings.DataDir, codec)
	}
}

// runSession runs one interactive session reading answers from in.
func runSession(ctx context.Context, settings config.Settings, in io.Reader, out io.Writer) error {
	store, err := initStorage(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	logger := slog.Default().With("session", uuid.New().String())
	logger.Info("session started", "backend", settings.Backend, "data_dir", settings.DataDir)

	interrupts := cli.NewInterruptHandler(out)
	ctx, stop := interrupts.HandleInterrupts(ctx)
	defer stop()

	opts := []cli.Option{}
	if out == os.Stdout {
		opts = append(opts, cli.WithProgressWriter(os.Stderr))
	}
	console := cli.NewPrompter(cli.NewNonBlockingReader(in), out, opts...)

	controller := session.New(storage.NewRepository(store), console, session.Options{
		Logger:    logger,
		ExportDir: settings.ExportDir,
	})
	if err := controller.Run(ctx); err != nil {
		common.LogError(logger, err, "session failed", common.Fields{"data_dir": settings.DataDir})
		return err
	}

	if interrupts.WasInterrupted() {
		logger.Info("session interrupted")
	}
	return nil
}
