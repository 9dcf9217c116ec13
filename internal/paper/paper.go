// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paper represents one document under analysis and reports which
// of its citations appear in a retraction dataset.
package paper

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/ash/internal/dispatch"
	"github.com/pdiddy/ash/pkg/types"
)

// Paper holds the identifiers found in a document. It is read-only once
// constructed.
type Paper struct {
	contentType types.ContentType
	identifiers []string
}

// New reads r fully and extracts identifiers with the extractor registered
// for ct. An empty ct is sniffed from the content.
func New(r io.Reader, ct types.ContentType, reg *dispatch.Registry) (*Paper, error) {
	if ct == "" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading paper: %w", err)
		}
		if ct, err = dispatch.Sniff(data); err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}

	x, err := reg.Extractor(ct)
	if err != nil {
		return nil, err
	}
	ids, err := x.ExtractIdentifiers(r)
	if err != nil {
		return nil, fmt.Errorf("extracting identifiers from %s: %w", ct, err)
	}
	return &Paper{contentType: ct, identifiers: ids}, nil
}

// FromString builds a Paper from in-memory text.
func FromString(text string, ct types.ContentType, reg *dispatch.Registry) (*Paper, error) {
	return New(strings.NewReader(text), ct, reg)
}

// FromPath opens the file at path, resolves its content type, and builds a
// Paper from it. A missing file yields an error wrapping fs.ErrNotExist.
func FromPath(path string, reg *dispatch.Registry) (*Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening paper: %w", err)
	}
	defer f.Close()

	ct, err := dispatch.ResolveContentType(path)
	if err != nil {
		return nil, err
	}
	p, err := New(f, ct, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ContentType returns the label the Paper was extracted as.
func (p *Paper) ContentType() types.ContentType {
	return p.contentType
}

// Identifiers returns every extracted identifier in extraction order,
// duplicates included.
func (p *Paper) Identifiers() []string {
	out := make([]string, len(p.identifiers))
	copy(out, p.identifiers)
	return out
}

// Unique returns the distinct identifiers, sorted.
func (p *Paper) Unique() []string {
	seen := make(map[string]struct{}, len(p.identifiers))
	out := make([]string, 0, len(p.identifiers))
	for _, id := range p.identifiers {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
