// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ContentType is a MIME-style label that selects the text extractor for a
// document (e.g. "application/pdf").
type ContentType string

const (
	ContentTextPlain ContentType = "text/plain"
	ContentTeX       ContentType = "text/x-tex"
	ContentAppTeX    ContentType = "application/x-tex"
	ContentLaTeX     ContentType = "application/x-latex"
	ContentPDF       ContentType = "application/pdf"
	ContentDOCX      ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentRTF       ContentType = "application/rtf"
	ContentTextRTF   ContentType = "text/rtf"
	ContentMSWord    ContentType = "application/msword"
)

func (c ContentType) String() string {
	return string(c)
}
