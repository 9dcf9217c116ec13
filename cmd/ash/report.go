// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ash/internal/dispatch"
	"github.com/pdiddy/ash/internal/existence"
	"github.com/pdiddy/ash/internal/paper"
	"github.com/pdiddy/ash/internal/report"
	"github.com/pdiddy/ash/internal/retraction"
	"github.com/pdiddy/ash/internal/settings"
	"github.com/pdiddy/ash/pkg/types"
)

// datasets shares loaded retraction tables between commands in one process.
var datasets = retraction.NewCache()

func runReport(cmd *cobra.Command, args []string) error {
	store, err := settings.Open(settingsPath())
	if err != nil {
		return err
	}
	slog.Debug("opened settings", "path", store.Path())

	if forget, _ := cmd.Flags().GetBool("clear"); forget {
		if err := store.ClearDatabasePath(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Removed previously recorded path of saved retractions database.")
		return nil
	}

	if len(args) == 0 {
		_ = cmd.Help()
		return errMissingPaper
	}

	cfg := loadConfig()
	database, err := rememberDatabase(store, cfg.DatabasePath)
	if err != nil {
		return err
	}
	cfg.DatabasePath = database

	return writeReport(cmd.Context(), cmd.OutOrStdout(), args[0], cfg)
}

// rememberDatabase resolves the dataset path, persisting it when it
// differs from what the store already holds.
func rememberDatabase(store *settings.Store, database string) (string, error) {
	if database == "" {
		database = store.DatabasePath()
	}
	if database == "" {
		return "", errMissingDatabase
	}
	if abs, err := filepath.Abs(database); err == nil {
		database = abs
	}
	if database != store.DatabasePath() {
		if err := store.SetDatabasePath(database); err != nil {
			return "", err
		}
	}
	return database, nil
}

// writeReport checks the paper at paperPath and renders the result to out.
func writeReport(ctx context.Context, out io.Writer, paperPath string, cfg types.Config) error {
	w, err := report.New(cfg.Format, out)
	if err != nil {
		return err
	}

	p, err := paper.FromPath(paperPath, dispatch.NewRegistry())
	if err != nil {
		return err
	}
	slog.Debug("extracted identifiers", "paper", paperPath, "type", p.ContentType(), "count", len(p.Identifiers()))

	table := datasets.Get(cfg.DatabasePath)
	slog.Info("using retraction dataset", "path", table.Path())

	opts := paper.Options{Validate: cfg.Check.Validate, Logger: slog.Default()}
	if cfg.Check.Validate {
		checker, closeCache, err := newChecker(cfg.Check)
		if err != nil {
			return err
		}
		defer closeCache()
		opts.Checker = checker
	}

	rep, err := p.Report(ctx, table, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(rep)
	return err
}

// newChecker builds the doi.org checker, backed by the SQLite cache when
// one is configured. The returned func releases the cache.
func newChecker(cfg types.CheckConfig) (*existence.Checker, func(), error) {
	if cfg.CacheDB == "" {
		return existence.NewFromConfig(cfg, nil, slog.Default()), func() {}, nil
	}

	cache, err := existence.OpenSQLiteCache(cfg.CacheDB)
	if err != nil {
		return nil, nil, err
	}
	closeCache := func() {
		if err := cache.Close(); err != nil {
			slog.Warn("closing existence cache", "error", err)
		}
	}
	return existence.NewFromConfig(cfg, cache, slog.Default()), closeCache, nil
}
