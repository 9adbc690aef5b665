package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"

	"github.com/airlinedw/segmenter/internal/segment"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run executes the main logic of the program.
func run(ctx context.Context, stdout io.Writer, getenv func(string) string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(stdout, nil))

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	db, err := warehouse.OpenDuckDB(ctx, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	loader := warehouse.NewLoader(logger, db)
	store := warehouse.NewStore(loader, cfg.DataDir)
	if err := store.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load warehouse: %w", err)
	}

	// Reload the warehouse whenever the data directory changes. The store
	// swaps the dataset reference atomically, so in-flight requests keep the
	// snapshot they started with.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(cfg.DataDir); err != nil {
		return fmt.Errorf("failed to watch data directory: %w", err)
	}
	go watchData(ctx, logger, watcher, store)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: (&server{
			logger:   logger,
			compiler: segment.NewCompiler(cfg.ReferenceYear),
			store:    store,
			db:       db,
			dataDir:  cfg.DataDir,
		}).routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// watchData reloads the store when a parquet file in the data directory is
// written or created.
func watchData(ctx context.Context, logger *slog.Logger, watcher *fsnotify.Watcher, store *warehouse.Store) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(filepath.Base(event.Name), ".parquet") {
				continue
			}
			if err := store.Reload(ctx); err != nil {
				logger.ErrorContext(ctx, "failed to reload warehouse",
					slog.String("file", event.Name),
					slog.Any("error", err))
				continue
			}
			logger.InfoContext(ctx, "reloaded warehouse", slog.String("file", event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.ErrorContext(ctx, "watcher error", slog.Any("error", err))
		}
	}
}
