// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a paper's retraction report in several formats.
package report

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/ash/pkg/types"
)

// ErrUnknownFormat is returned by New for an unrecognised format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Writer renders reports to an output.
type Writer interface {
	// Write renders report and returns the number of bytes written.
	Write(report *types.Report) (int, error)
}

// New returns the Writer for format. An empty format selects text.
func New(format types.ReportFormat, output io.Writer) (Writer, error) {
	switch format {
	case types.FormatText, "":
		return NewTextWriter(output), nil
	case types.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case types.FormatYAML:
		return NewYAMLWriter(output), nil
	case types.FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q (want text, json, yaml or markdown)", ErrUnknownFormat, string(format))
	}
}

// baseWriter holds the output shared by every format.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// sortedIdentifiers returns the report's identifier keys in order.
func sortedIdentifiers(report *types.Report) []string {
	ids := make([]string, 0, len(report.Identifiers))
	for id := range report.Identifiers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// zombiesByDOI groups zombies under their DOI, keeping report order.
func zombiesByDOI(report *types.Report) map[string][]types.Zombie {
	out := make(map[string][]types.Zombie)
	for _, z := range report.Zombies {
		out[z.DOI] = append(out[z.DOI], z)
	}
	return out
}

// validity renders the tri-state existence flag.
func validity(v *bool) string {
	switch {
	case v == nil:
		return "unknown"
	case *v:
		return "yes"
	default:
		return "no"
	}
}
