// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Column names in the Retraction Watch CSV export.
const (
	ColumnOriginalPaperDOI = "OriginalPaperDOI"
	ColumnRetractionNature = "RetractionNature"
	ColumnRetractionDate   = "RetractionDate"
	ColumnRetractionDOI    = "RetractionDOI"
)

// NoticeBaseURL prefixes a retraction notice DOI to form a resolvable link.
const NoticeBaseURL = "https://doi.org/"

// RetractionRecord is one row of the retraction dataset, keyed by header
// name. Every field is kept verbatim as a string, including columns this
// package does not know about.
type RetractionRecord map[string]string

// OriginalDOI returns the raw identifier of the retracted paper.
func (r RetractionRecord) OriginalDOI() string {
	return r[ColumnOriginalPaperDOI]
}

// Nature returns the kind of notice (e.g. "Retraction", "Correction").
func (r RetractionRecord) Nature() string {
	return r[ColumnRetractionNature]
}

// Date returns the retraction date as written in the dataset.
func (r RetractionRecord) Date() string {
	return r[ColumnRetractionDate]
}

// NoticeDOI returns the identifier of the retraction notice itself.
func (r RetractionRecord) NoticeDOI() string {
	return r[ColumnRetractionDOI]
}

// NoticeURL returns the doi.org link to the retraction notice.
func (r RetractionRecord) NoticeURL() string {
	return NoticeBaseURL + r.NoticeDOI()
}
