// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Ensure PDF implements the interface.
var _ TextExtractor = (*PDF)(nil)

// PDF extracts text from every page of a PDF document.
//
// Known limitation: a DOI that wraps across a rendered line break comes out
// truncated at the break, or is missed entirely.
type PDF struct{}

// NewPDF creates a PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// Text returns the plain text of all pages in page order, joined with "\n".
func (p *PDF) Text(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// ExtractIdentifiers implements Extractor.
func (p *PDF) ExtractIdentifiers(r io.Reader) ([]string, error) {
	return identifiers(p.Text(r))
}
