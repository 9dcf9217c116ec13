// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retraction

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

const hexDigits = "0123456789abcdef"

// escaper passes valid UTF-8 through unchanged and rewrites every byte that
// is not part of a valid sequence as a four character \xNN escape.
type escaper struct {
	transform.NopResetter
}

// NewEscaper returns a transformer that replaces undecodable bytes with
// \xNN escapes so a damaged row still loads.
func NewEscaper() transform.Transformer {
	return escaper{}
}

func (escaper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			// A multi-byte sequence cut off by the buffer boundary.
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nDst+4 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\\'
			dst[nDst+1] = 'x'
			dst[nDst+2] = hexDigits[c>>4]
			dst[nDst+3] = hexDigits[c&0x0f]
			nDst += 4
			nSrc++
			continue
		}

		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}
