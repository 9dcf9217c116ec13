// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ash/pkg/types"
)

func boolPtr(b bool) *bool {
	return &b
}

func sampleReport() *types.Report {
	return &types.Report{
		Identifiers: map[string]types.IdentifierStatus{
			"10.21105/joss.03440":    {Valid: boolPtr(true), Retracted: false},
			"10.1234/retracted12349": {Valid: nil, Retracted: true},
			"10.9999/missing1":       {Valid: boolPtr(false), Retracted: false},
		},
		Zombies: []types.Zombie{
			{DOI: "10.1234/retracted12349", Nature: "Retraction", Date: "8/16/2021 0:00", NoticeURL: "https://doi.org/10.1234/notice0001"},
			{DOI: "10.1234/retracted12349", Nature: "Expression of concern", Date: "1/02/2022 0:00", NoticeURL: "https://doi.org/10.1234/notice0002"},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format types.ReportFormat
		want   any
	}{
		{"", &TextWriter{}},
		{types.FormatText, &TextWriter{}},
		{types.FormatJSON, &JSONWriter{}},
		{types.FormatYAML, &YAMLWriter{}},
		{types.FormatMarkdown, &MarkdownWriter{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := New(tt.format, &bytes.Buffer{})
			require.NoError(t, err)
			assert.IsType(t, tt.want, w)
		})
	}

	_, err := New("csv", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewTextWriter(&buf).Write(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	want := "  10.1234/retracted12349\n" +
		"  ❗ Retraction - 8/16/2021 0:00 - see https://doi.org/10.1234/notice0001\n" +
		"  ❗ Expression of concern - 1/02/2022 0:00 - see https://doi.org/10.1234/notice0002\n" +
		"✔ 10.21105/joss.03440\n" +
		"✔ 10.9999/missing1 (not registered at doi.org)\n" +
		"\n3 DOIs checked, 1 retracted or flagged.\n"
	assert.Equal(t, want, buf.String())
}

func TestTextWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewTextWriter(&buf).Write(&types.Report{Identifiers: map[string]types.IdentifierStatus{}})
	require.NoError(t, err)
	assert.Equal(t, "No DOIs found.\n", buf.String())
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewJSONWriter(&buf).Write(sampleReport())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	ids := got["identifiers"].(map[string]any)
	assert.Equal(t, map[string]any{"is_valid": nil, "is_retracted": true}, ids["10.1234/retracted12349"])
	assert.Equal(t, map[string]any{"is_valid": false, "is_retracted": false}, ids["10.9999/missing1"])

	zombies := got["zombies"].([]any)
	require.Len(t, zombies, 2)
	assert.Equal(t, "https://doi.org/10.1234/notice0001", zombies[0].(map[string]any)["notice_url"])
}

func TestJSONWriterPrettyPrint(t *testing.T) {
	var compact, pretty bytes.Buffer
	_, err := NewJSONWriter(&compact).Write(sampleReport())
	require.NoError(t, err)
	_, err = NewJSONWriter(&pretty, WithPrettyPrint()).Write(sampleReport())
	require.NoError(t, err)

	assert.NotContains(t, compact.String(), "\n  ")
	assert.Contains(t, pretty.String(), "\n  \"identifiers\": {")
	assert.JSONEq(t, compact.String(), pretty.String())
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewYAMLWriter(&buf).Write(sampleReport())
	require.NoError(t, err)

	var got types.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleReport(), got)
	assert.Contains(t, buf.String(), "is_retracted: true")
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewMarkdownWriter(&buf).Write(sampleReport())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# Retraction Report")
	assert.Contains(t, out, "[!CAUTION]")
	assert.Contains(t, out, "## Cited DOIs")
	assert.Contains(t, out, "`10.9999/missing1`")
	assert.Contains(t, out, "## Retraction Notices")
	assert.Contains(t, out, "Expression of concern")
}

func TestMarkdownWriterClean(t *testing.T) {
	report := &types.Report{
		Identifiers: map[string]types.IdentifierStatus{"10.21105/joss.03440": {}},
		Zombies:     []types.Zombie{},
	}

	var buf bytes.Buffer
	_, err := NewMarkdownWriter(&buf).Write(report)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[!TIP]")
	assert.NotContains(t, out, "## Retraction Notices")
}
