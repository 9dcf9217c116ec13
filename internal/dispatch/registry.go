// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"sort"

	"github.com/pdiddy/ash/internal/extract"
	"github.com/pdiddy/ash/pkg/types"
)

// Registry maps content types to extractors. It is fixed at construction.
type Registry struct {
	extractors map[types.ContentType]extract.TextExtractor
	supported  []string
}

// NewRegistry returns a registry covering every supported content type.
func NewRegistry() *Registry {
	plain := extract.NewPlainText()
	rtf := extract.NewRTF()

	extractors := map[types.ContentType]extract.TextExtractor{
		types.ContentTextPlain: plain,
		types.ContentTeX:       plain,
		types.ContentAppTeX:    plain,
		types.ContentLaTeX:     plain,
		types.ContentPDF:       extract.NewPDF(),
		types.ContentDOCX:      extract.NewDOCX(),
		types.ContentRTF:       rtf,
		types.ContentTextRTF:   rtf,
		types.ContentMSWord:    rtf,
	}

	supported := make([]string, 0, len(extractors))
	for ct := range extractors {
		supported = append(supported, string(ct))
	}
	sort.Strings(supported)

	return &Registry{extractors: extractors, supported: supported}
}

// Extractor returns the extractor for ct.
func (r *Registry) Extractor(ct types.ContentType) (extract.TextExtractor, error) {
	if x, ok := r.extractors[ct]; ok {
		return x, nil
	}
	return nil, &UnsupportedError{Label: ct, Supported: r.Supported()}
}

// Supported lists every registered content type label, sorted.
func (r *Registry) Supported() []string {
	out := make([]string, len(r.supported))
	copy(out, r.supported)
	return out
}
