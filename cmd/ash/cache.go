// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ash/internal/existence"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the doi.org answer cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every cached doi.org answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clearCache(cmd.OutOrStdout(), viper.GetString(keyCacheDB))
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func clearCache(out io.Writer, path string) error {
	if path == "" {
		return errors.New("no cache database configured (--cache-db)")
	}
	cache, err := existence.OpenSQLiteCache(path)
	if err != nil {
		return err
	}
	defer cache.Close()

	n, err := cache.Len()
	if err != nil {
		return err
	}
	if err := cache.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Cleared %d cached answer(s) from %s\n", n, path)
	return nil
}
