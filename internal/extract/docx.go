// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// documentPart is the main body of a WordprocessingML package.
	documentPart = "word/document.xml"

	// wordNamespace is the WordprocessingML main namespace. Paragraphs and
	// runs from DrawingML or OMML share local names with it.
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// ErrNoDocumentPart is returned when a DOCX archive lacks word/document.xml.
var ErrNoDocumentPart = errors.New("docx: missing " + documentPart)

// Ensure DOCX implements the interface.
var _ TextExtractor = (*DOCX)(nil)

// DOCX extracts paragraph text from Word (OOXML) documents.
type DOCX struct{}

// NewDOCX creates a DOCX extractor.
func NewDOCX() *DOCX {
	return &DOCX{}
}

// Text returns the text of every paragraph in document order. Runs within
// a paragraph are concatenated; paragraphs are separated by a blank line.
func (d *DOCX) Text(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading docx: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}

	for _, file := range archive.File {
		if file.Name != documentPart {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", documentPart, err)
		}
		defer rc.Close()

		paragraphs, err := parseParagraphs(rc)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", documentPart, err)
		}
		return strings.Join(paragraphs, "\n\n"), nil
	}
	return "", ErrNoDocumentPart
}

// ExtractIdentifiers implements Extractor.
func (d *DOCX) ExtractIdentifiers(r io.Reader) ([]string, error) {
	return identifiers(d.Text(r))
}

// parseParagraphs streams document.xml and collects the text of each
// top-level w:p element. Text inside hyperlinks, tables, and nested
// paragraphs (text boxes) belongs to the enclosing paragraph. DrawingML and
// math markup is skipped.
func parseParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
