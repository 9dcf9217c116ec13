// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ash/pkg/types"
)

// YAMLWriter outputs reports as YAML.
type YAMLWriter struct {
	baseWriter
}

// NewYAMLWriter creates a YAMLWriter.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{baseWriter: newBaseWriter(output)}
}

// Write renders report as a YAML document.
func (w *YAMLWriter) Write(report *types.Report) (int, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
