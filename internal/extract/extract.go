// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns documents of different formats into flat text and
// pulls DOI candidates out of that text. Each format has its own Extractor;
// none of them consult the retraction dataset.
package extract

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/ash/internal/doi"
)

// Extractor produces DOI candidates from a raw document stream.
type Extractor interface {
	// ExtractIdentifiers reads r to the end and returns the cleaned DOI
	// matches found in its visible text. Duplicates are kept.
	ExtractIdentifiers(r io.Reader) ([]string, error)
}

// TextExtractor is an Extractor that can also expose the flat text it
// searches.
type TextExtractor interface {
	Extractor

	// Text reads r to the end and returns the document's visible text.
	Text(r io.Reader) (string, error)
}

// identifiers runs DOI extraction over the output of a Text call.
func identifiers(text string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return doi.ExtractAll(text), nil
}

// decodeUTF8 converts raw bytes to NFC-normalised text, replacing invalid
// UTF-8 sequences with U+FFFD.
func decodeUTF8(data []byte) string {
	s := string(data)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	s = strings.TrimPrefix(s, "\uFEFF")
	return norm.NFC.String(s)
}
