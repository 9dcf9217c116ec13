// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/ash/pkg/types"
)

const (
	markClean  = "✔"
	markZombie = "❗"
)

// TextWriter prints one line per identifier, with the retraction notices
// of each cited zombie indented beneath it.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write renders report as text.
func (w *TextWriter) Write(report *types.Report) (int, error) {
	var b strings.Builder
	zombies := zombiesByDOI(report)

	for _, id := range sortedIdentifiers(report) {
		status := report.Identifiers[id]
		mark := markClean
		if status.Retracted {
			mark = " "
		}
		line := mark + " " + id
		if status.Valid != nil && !*status.Valid {
			line += " (not registered at doi.org)"
		}
		b.WriteString(line + "\n")

		for _, z := range zombies[id] {
			fmt.Fprintf(&b, "  %s %s - %s - see %s\n", markZombie, z.Nature, z.Date, z.NoticeURL)
		}
	}

	retracted := report.Retracted()
	if len(report.Identifiers) == 0 {
		b.WriteString("No DOIs found.\n")
	} else {
		fmt.Fprintf(&b, "\n%d DOIs checked, %d retracted or flagged.\n", len(report.Identifiers), len(retracted))
	}

	return io.WriteString(w.output, b.String())
}
