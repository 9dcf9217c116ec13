// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain paragraph",
			in:   `{\rtf1\ansi\deff0 {\fonttbl {\f0 Times New Roman;}}\f0\pard A DOI here 10.21105/joss.03440\par}`,
			want: "A DOI here 10.21105/joss.03440\n",
		},
		{
			name: "hex escape through code page",
			in:   `{\rtf1\ansi\ansicpg1252 caf\'e9}`,
			want: "café",
		},
		{
			name: "unicode with fallback",
			in:   `{\rtf1\ansi a\u8212? b}`,
			want: "a— b",
		},
		{
			name: "unicode fallback count",
			in:   `{\rtf1\ansi\uc2 x\u8220\'93\'93y}`,
			want: "x“y",
		},
		{
			name: "starred destination dropped",
			in:   `{\rtf1{\*\generator Riched20 10.0;}visible}`,
			want: "visible",
		},
		{
			name: "field instruction dropped, result kept",
			in:   `{\rtf1{\field{\*\fldinst{HYPERLINK "https://doi.org/10.1/hidden"}}{\fldrslt{shown}}}}`,
			want: "shown",
		},
		{
			name: "escaped braces and backslash",
			in:   `{\rtf1 a\{b\}c\\d}`,
			want: `a{b}c\d`,
		},
		{
			name: "source newlines ignored",
			in:   "{\\rtf1 10.1126/\r\nscience.aax5705}",
			want: "10.1126/science.aax5705",
		},
		{
			name: "tab and line",
			in:   `{\rtf1 a\tab b\line c}`,
			want: "a\tb\nc",
		},
		{
			name: "bold group keeps text",
			in:   `{\rtf1 see {\b 10.1038/478026a} now}`,
			want: "see 10.1038/478026a now",
		},
		{
			name: "colour table dropped",
			in:   `{\rtf1{\colortbl;\red255\green0\blue0;}text}`,
			want: "text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertRejectsNonRTF(t *testing.T) {
	_, err := Convert([]byte("\xd0\xcf\x11\xe0 binary word document"))
	assert.ErrorIs(t, err, ErrNotRTF)
}

func TestConvertAcceptsBOMAndLeadingSpace(t *testing.T) {
	got, err := Convert([]byte("\xef\xbb\xbf \n{\\rtf1 ok}"))
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestToText(t *testing.T) {
	got, err := ToText(strings.NewReader(`{\rtf1\ansi hello\par world}`))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", got)
}
