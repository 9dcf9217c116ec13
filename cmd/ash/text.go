// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ash/internal/dispatch"
)

var textCmd = &cobra.Command{
	Use:   "text PAPER",
	Short: "Print the text ash extracts from a paper",
	Long: `Text prints the flattened text that DOIs are searched in. Use it to see
why a citation was missed, for example a DOI broken across lines in a PDF.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printText(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(textCmd)
}

func printText(out io.Writer, path string) error {
	ct, err := dispatch.ResolveContentType(path)
	if err != nil {
		return err
	}
	x, err := dispatch.NewRegistry().Extractor(ct)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening paper: %w", err)
	}
	defer f.Close()

	text, err := x.Text(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = fmt.Fprintln(out, text)
	return err
}
