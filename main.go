package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"tasklist/internal/clock"
	"tasklist/internal/config"
	"tasklist/internal/handlers"
	"tasklist/internal/logging"
	"tasklist/internal/session"
	"tasklist/internal/store"
	"tasklist/internal/tasklist"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: tasklist [run|print|serve] [flags]")
		fs.PrintDefaults()
	}
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)
	if cfg.ConfigFile != "" {
		logger.Debug("loaded config file", "path", cfg.ConfigFile)
	}

	command := "run"
	if rest := fs.Args(); len(rest) > 0 {
		if len(rest) > 1 {
			return fmt.Errorf("unexpected arguments: %v", rest[1:])
		}
		command = rest[0]
	}
	switch command {
	case "run", "print", "serve":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	path := cfg.StoragePath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	s, err := store.Open(cfg.Storage, path)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}
	defer s.Close()
	logger.Debug("opened storage", "backend", cfg.Storage, "path", path)

	ctx := context.Background()
	switch command {
	case "print":
		return printTasks(ctx, s, palette(cfg.Color))
	case "serve":
		return serve(ctx, cfg.Addr, s, logger)
	default:
		return runSession(ctx, s, palette(cfg.Color), logger)
	}
}

func palette(color string) tasklist.Palette {
	switch color {
	case "always":
		return tasklist.NewPalette(termenv.ANSI)
	case "never":
		return tasklist.NewPalette(termenv.Ascii)
	default:
		return tasklist.NewPalette(termenv.NewOutput(os.Stdout).EnvColorProfile())
	}
}

func loadList(ctx context.Context, s store.Store) (*tasklist.List, error) {
	tasks, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasklist.New(clock.Real(), tasks), nil
}

func runSession(ctx context.Context, s store.Store, p tasklist.Palette, logger *slog.Logger) error {
	l, err := loadList(ctx, s)
	if err != nil {
		return err
	}
	logger.Info("loaded tasks", "count", l.Len())

	return session.New(os.Stdin, os.Stdout, l, s, p, logger).Run(ctx)
}

func printTasks(ctx context.Context, s store.Store, p tasklist.Palette) error {
	l, err := loadList(ctx, s)
	if err != nil {
		return err
	}
	for line := range l.Render(p) {
		fmt.Println(line)
	}
	return nil
}

func serve(ctx context.Context, addr string, s store.Store, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := handlers.New(s, clock.Real(), logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
