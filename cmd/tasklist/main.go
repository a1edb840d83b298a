package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/persist"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/todo"
	"github.com/sandeepkv93/tasklist/internal/update"
)

const loadTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("store opened", "backend", cfg.Store, "path", cfg.StorePath)

	writer := persist.NewWriter(store, storage.DefaultKey,
		persist.WithLogger(logger.WithPrefix("persist")),
		persist.WithWriteTimeout(cfg.WriteTimeout()),
	)
	writer.Start()
	defer writer.Stop()

	ctrl := todo.New(store, writer, todo.WithLogger(logger.WithPrefix("todo")))
	loadTasks(ctrl, logger)

	program := tea.NewProgram(update.NewModel(ctrl, update.Options{
		SaveErrors:   writer.Errors(),
		SaveWarnings: cfg.SaveWarnings,
	}))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func loadTasks(ctrl *todo.Controller, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := ctrl.Load(ctx); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("starting with an empty task list", "err", err)
	}
}

func openStore(cfg config.RuntimeConfig) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil
	case config.StoreFile:
		return storage.NewFileStore(cfg.StorePath)
	default:
		if dir := filepath.Dir(cfg.StorePath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store dir: %w", err)
			}
		}
		return storage.OpenSQLite(cfg.StorePath)
	}
}
