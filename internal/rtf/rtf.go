// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rtf converts Rich Text Format markup to plain text.
//
// The converter walks the group structure, drops non-text destinations
// (font tables, stylesheets, pictures, field instructions, and any
// destination marked with \*), decodes \'hh escapes through the document's
// ANSI code page, and honours \uN with its \ucN fallback count. Layout is
// reduced to newlines (\par, \line, \row) and tabs (\tab, \cell).
package rtf

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ErrNotRTF is returned when the input does not start with an RTF header.
var ErrNotRTF = errors.New("input is not RTF")

// skipDestinations hold no visible body text.
var skipDestinations = map[string]bool{
	"fonttbl":            true,
	"colortbl":           true,
	"stylesheet":         true,
	"info":               true,
	"pict":               true,
	"object":             true,
	"fldinst":            true,
	"themedata":          true,
	"colorschememapping": true,
	"datastore":          true,
	"latentstyles":       true,
	"listtable":          true,
	"listoverridetable":  true,
	"rsidtbl":            true,
	"generator":          true,
	"xmlnstbl":           true,
	"filetbl":            true,
	"revtbl":             true,
	"mmathPr":            true,
	"pgdsctbl":           true,
}

// symbols maps control words that stand for a single character.
var symbols = map[string]string{
	"par":       "\n",
	"sect":      "\n",
	"page":      "\n",
	"line":      "\n",
	"row":       "\n",
	"tab":       "\t",
	"cell":      "\t",
	"emdash":    "—",
	"endash":    "–",
	"emspace":   " ",
	"enspace":   " ",
	"qmspace":   " ",
	"bullet":    "•",
	"lquote":    "‘",
	"rquote":    "’",
	"ldblquote": "“",
	"rdblquote": "”",
}

// codePages maps \ansicpgN to a decoder for \'hh escapes.
var codePages = map[int]*charmap.Charmap{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	866:   charmap.CodePage866,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
}

// state is the per-group formatting state that RTF restores on '}'.
type state struct {
	skip bool
	uc   int
}

// ToText reads all of r and converts it.
func ToText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Convert(data)
}

// Convert turns RTF bytes into plain text.
func Convert(data []byte) (string, error) {
	data = bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if !bytes.HasPrefix(data, []byte(`{\rtf`)) {
		return "", ErrNotRTF
	}

	c := converter{
		data:    data,
		cur:     state{uc: 1},
		decoder: charmap.Windows1252,
	}
	c.run()
	return c.out.String(), nil
}

type converter struct {
	data    []byte
	pos     int
	cur     state
	stack   []state
	decoder *charmap.Charmap
	// pendingSkip counts fallback characters still to drop after \uN.
	pendingSkip int
	// destStart is set right after '{' so the next control word can be
	// recognised as a destination.
	destStart bool
	// starred is set after \* until the following control word.
	starred bool
	out     strings.Builder
}

func (c *converter) run() {
	for c.pos < len(c.data) {
		ch := c.data[c.pos]
		switch ch {
		case '{':
			c.stack = append(c.stack, c.cur)
			c.pendingSkip = 0
			c.destStart = true
			c.pos++
			continue
		case '}':
			if n := len(c.stack); n > 0 {
				c.cur = c.stack[n-1]
				c.stack = c.stack[:n-1]
			}
			c.pendingSkip = 0
			c.pos++
		case '\\':
			c.control()
		case '\r', '\n':
			c.pos++
			continue
		default:
			c.pos++
			c.emitByte(ch)
		}
		c.destStart = false
	}
}

// control handles a backslash sequence starting at c.pos.
func (c *converter) control() {
	c.pos++ // backslash
	if c.pos >= len(c.data) {
		return
	}
	ch := c.data[c.pos]

	if !isLetter(ch) {
		c.pos++
		c.controlSymbol(ch)
		return
	}

	start := c.pos
	for c.pos < len(c.data) && isLetter(c.data[c.pos]) {
		c.pos++
	}
	word := string(c.data[start:c.pos])

	param, hasParam := c.readParam()
	if c.pos < len(c.data) && c.data[c.pos] == ' ' {
		c.pos++
	}

	c.controlWord(word, param, hasParam)
}

func (c *converter) readParam() (int, bool) {
	start := c.pos
	if c.pos < len(c.data) && c.data[c.pos] == '-' {
		c.pos++
	}
	digits := c.pos
	for c.pos < len(c.data) && c.data[c.pos] >= '0' && c.data[c.pos] <= '9' {
		c.pos++
	}
	if c.pos == digits {
		c.pos = start
		return 0, false
	}
	n, err := strconv.Atoi(string(c.data[start:c.pos]))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *converter) controlSymbol(ch byte) {
	switch ch {
	case '*':
		c.starred = true
		// Keep destStart so the destination word after \* is seen.
		c.destStart = true
		c.run1()
	case '\'':
		if c.pos+2 > len(c.data) {
			c.pos = len(c.data)
			return
		}
		b, err := strconv.ParseUint(string(c.data[c.pos:c.pos+2]), 16, 8)
		c.pos += 2
		if err != nil {
			return
		}
		c.emitRune(c.decoder.DecodeByte(byte(b)))
	case '\\', '{', '}':
		c.emitRune(rune(ch))
	case '~':
		c.emitRune(' ')
	case '_':
		c.emitRune('-')
	case '\r', '\n':
		c.emit("\n")
	}
}

// run1 processes the control word that follows \* as a destination.
func (c *converter) run1() {
	for c.pos < len(c.data) && (c.data[c.pos] == ' ' || c.data[c.pos] == '\r' || c.data[c.pos] == '\n') {
		c.pos++
	}
	if c.pos < len(c.data) && c.data[c.pos] == '\\' {
		c.control()
	}
}

func (c *converter) controlWord(word string, param int, hasParam bool) {
	if c.destStart || c.starred {
		if c.starred || skipDestinations[word] {
			c.cur.skip = true
		}
		c.starred = false
		c.destStart = false
	}

	switch word {
	case "ansicpg":
		if cm, ok := codePages[param]; ok {
			c.decoder = cm
		}
		return
	case "mac":
		c.decoder = charmap.Macintosh
		return
	case "pc":
		c.decoder = charmap.CodePage437
		return
	case "pca":
		c.decoder = charmap.CodePage850
		return
	case "uc":
		if hasParam && param >= 0 {
			c.cur.uc = param
		}
		return
	case "u":
		if !hasParam {
			return
		}
		if param < 0 {
			param += 65536
		}
		c.emitRune(rune(param))
		c.pendingSkip = c.cur.uc
		return
	}

	if s, ok := symbols[word]; ok {
		c.emit(s)
	}
}

// emitByte writes a literal byte from the document body. Bytes above 0x7f
// are decoded through the active code page.
func (c *converter) emitByte(b byte) {
	if b < 0x80 {
		c.emitRune(rune(b))
		return
	}
	c.emitRune(c.decoder.DecodeByte(b))
}

func (c *converter) emitRune(r rune) {
	if c.pendingSkip > 0 {
		c.pendingSkip--
		return
	}
	if c.cur.skip {
		return
	}
	c.out.WriteRune(r)
}

func (c *converter) emit(s string) {
	if c.cur.skip {
		return
	}
	c.pendingSkip = 0
	c.out.WriteString(s)
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
