// Command spd serves the IoT career roadmap API.
//
// The catalog lives in SQLite and is seeded automatically on the first
// roadmap read. With --seed the catalog is loaded from a YAML file
// instead, and --watch re-seeds whenever that file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rvanmaanen/skillpath/internal/server"
	"github.com/rvanmaanen/skillpath/internal/store"
	"github.com/rvanmaanen/skillpath/pkg/version"
	"github.com/rvanmaanen/skillpath/pkg/watcher"
)

func main() {
	addr := flag.String("addr", ":8000", "Listen address")
	dbPath := flag.String("db", "skillpath.db", "SQLite database path (use :memory: for ephemeral)")
	seedPath := flag.String("seed", "", "Seed the catalog from a YAML file on startup")
	watchSeed := flag.Bool("watch", false, "Re-seed when the --seed file changes")
	devLog := flag.Bool("dev", false, "Human-readable development logging")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("spd %s\n", version.Version)
		os.Exit(0)
	}

	logger, err := newLogger(*devLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *watchSeed && *seedPath == "" {
		logger.Fatal("--watch requires --seed")
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Fatal("opening catalog database", zap.String("path", *dbPath), zap.Error(err))
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *seedPath != "" {
		if err := seedFromFile(ctx, st, *seedPath); err != nil {
			logger.Fatal("seeding catalog", zap.String("path", *seedPath), zap.Error(err))
		}
		logger.Info("seeded catalog from file", zap.String("path", *seedPath))
	}

	if *watchSeed {
		w, err := watcher.New(*seedPath)
		if err != nil {
			logger.Fatal("creating seed watcher", zap.Error(err))
		}
		if err := w.Start(); err != nil {
			logger.Fatal("starting seed watcher", zap.Error(err))
		}
		defer w.Stop()
		logger.Info("watching seed file",
			zap.String("path", w.Path()),
			zap.Bool("polling", w.IsPolling()))

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-w.Changed():
					if err := seedFromFile(ctx, st, *seedPath); err != nil {
						logger.Error("re-seeding catalog", zap.Error(err))
						continue
					}
					logger.Info("re-seeded catalog after seed file change")
				}
			}
		}()
	}

	srv := server.New(st, logger)
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("shut down cleanly")
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func seedFromFile(ctx context.Context, st *store.Store, path string) error {
	ds, err := store.LoadDataset(path)
	if err != nil {
		return err
	}
	return st.Seed(ctx, ds)
}
