// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch decides what kind of document a file is and which
// extractor handles it.
package dispatch

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/ash/pkg/types"
)

// Dispatch errors.
var (
	ErrUnknownContentType     = errors.New("unable to determine content type")
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

// UnsupportedError reports a content type with no registered extractor.
type UnsupportedError struct {
	Label     types.ContentType
	Supported []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("content type %q is not supported; supported types: %s",
		string(e.Label), strings.Join(e.Supported, ", "))
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedContentType
}

// suffixes takes precedence over the platform MIME table, which is often
// missing or wrong for TeX and RTF.
var suffixes = map[string]types.ContentType{
	".txt":   types.ContentTextPlain,
	".text":  types.ContentTextPlain,
	".tex":   types.ContentTeX,
	".latex": types.ContentLaTeX,
	".pdf":   types.ContentPDF,
	".docx":  types.ContentDOCX,
	".rtf":   types.ContentRTF,
	".doc":   types.ContentMSWord,
}

// octetStream is what the sniffer reports when it recognises nothing.
const octetStream = "application/octet-stream"

// ResolveContentType determines the content type of the file at path from
// its suffix, falling back to sniffing the file's leading bytes.
func ResolveContentType(path string) (types.ContentType, error) {
	if ct, ok := fromSuffix(path); ok {
		return ct, nil
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("sniffing %s: %w", path, err)
	}
	if ct, ok := fromMediaType(m.String()); ok {
		return ct, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownContentType)
}

// Sniff determines a content type from document bytes alone.
func Sniff(data []byte) (types.ContentType, error) {
	if ct, ok := fromMediaType(mimetype.Detect(data).String()); ok {
		return ct, nil
	}
	return "", ErrUnknownContentType
}

func fromSuffix(path string) (types.ContentType, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	if ct, ok := suffixes[ext]; ok {
		return ct, true
	}
	return fromMediaType(mime.TypeByExtension(ext))
}

// fromMediaType strips parameters such as charset and rejects the generic
// binary label.
func fromMediaType(v string) (types.ContentType, bool) {
	if v == "" {
		return "", false
	}
	mediaType, _, err := mime.ParseMediaType(v)
	if err != nil || mediaType == octetStream {
		return "", false
	}
	return types.ContentType(mediaType), true
}
