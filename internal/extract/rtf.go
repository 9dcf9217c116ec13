// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"

	"github.com/pdiddy/ash/internal/rtf"
)

// Ensure RTF implements the interface.
var _ TextExtractor = (*RTF)(nil)

// RTF extracts visible text from Rich Text Format documents. Word's legacy
// "application/msword" label is routed here too, since many .doc files in
// the wild are RTF.
type RTF struct{}

// NewRTF creates an RTF extractor.
func NewRTF() *RTF {
	return &RTF{}
}

// Text converts the RTF markup in r to plain text.
func (x *RTF) Text(r io.Reader) (string, error) {
	text, err := rtf.ToText(r)
	if err != nil {
		return "", fmt.Errorf("converting rtf: %w", err)
	}
	return text, nil
}

// ExtractIdentifiers implements Extractor.
func (x *RTF) ExtractIdentifiers(r io.Reader) ([]string, error) {
	return identifiers(x.Text(r))
}
