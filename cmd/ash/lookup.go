// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ash/internal/doi"
	"github.com/pdiddy/ash/internal/retraction"
	"github.com/pdiddy/ash/internal/settings"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup DOI...",
	Short: "Look DOIs up in the retraction dataset",
	Long: `Lookup checks each DOI directly against the retraction dataset and prints
every matching notice. DOIs are cleaned and validated first; invalid ones
are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settings.Open(settingsPath())
		if err != nil {
			return err
		}
		database, err := rememberDatabase(store, viper.GetString(keyDatabase))
		if err != nil {
			return err
		}
		return lookup(cmd.OutOrStdout(), datasets.Get(database), args)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func lookup(out io.Writer, table *retraction.Table, raws []string) error {
	for _, raw := range raws {
		d, err := doi.Parse(raw)
		if err != nil {
			fmt.Fprintf(out, "? %s: %v\n", raw, err)
			continue
		}

		records, err := table.Records(d.String())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintf(out, "✔ %s: not in dataset\n", d)
			continue
		}
		fmt.Fprintf(out, "  %s (%s)\n", d, d.URL())
		for _, rec := range records {
			fmt.Fprintf(out, "  ❗ %s - %s - see %s\n", rec.Nature(), rec.Date(), rec.NoticeURL())
			if raw := rec.OriginalDOI(); raw != d.String() {
				fmt.Fprintf(out, "    listed as %q\n", raw)
			}
		}
	}
	return nil
}
