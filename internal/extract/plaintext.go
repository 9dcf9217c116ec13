// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
)

// Ensure PlainText implements the interface.
var _ TextExtractor = (*PlainText)(nil)

// PlainText handles plain text and TeX/LaTeX sources.
type PlainText struct{}

// NewPlainText creates a plain text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Text reads r and decodes it as UTF-8.
func (p *PlainText) Text(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return decodeUTF8(data), nil
}

// ExtractIdentifiers implements Extractor.
func (p *PlainText) ExtractIdentifiers(r io.Reader) ([]string, error) {
	return identifiers(p.Text(r))
}
