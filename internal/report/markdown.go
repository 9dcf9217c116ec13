// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"io"

	"github.com/nao1215/markdown"

	"github.com/pdiddy/ash/pkg/types"
)

// MarkdownWriter outputs reports as GitHub-flavoured Markdown, suitable for
// pasting into a review or pull request.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders report as Markdown.
func (w *MarkdownWriter) Write(report *types.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Retraction Report")
	md.PlainText("")

	retracted := report.Retracted()
	if len(retracted) == 0 {
		md.Tip("None of the cited DOIs appear in the retraction dataset.")
	} else {
		md.Cautionf("%d cited DOI(s) appear in the retraction dataset.", len(retracted))
	}
	md.PlainText("")

	w.writeIdentifiers(md, report)
	w.writeZombies(md, report)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeIdentifiers(md *markdown.Markdown, report *types.Report) {
	md.H2("Cited DOIs")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Identifiers))
	for _, id := range sortedIdentifiers(report) {
		status := report.Identifiers[id]
		retracted := "no"
		if status.Retracted {
			retracted = "**yes**"
		}
		rows = append(rows, []string{"`" + id + "`", retracted, validity(status.Valid)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"DOI", "Retracted", "Registered"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeZombies(md *markdown.Markdown, report *types.Report) {
	if len(report.Zombies) == 0 {
		return
	}
	md.H2("Retraction Notices")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Zombies))
	for _, z := range report.Zombies {
		rows = append(rows, []string{"`" + z.DOI + "`", z.Nature, z.Date, z.NoticeURL})
	}
	md.Table(markdown.TableSet{
		Header: []string{"DOI", "Nature", "Date", "Notice"},
		Rows:   rows,
	})
	md.PlainText("")
}
