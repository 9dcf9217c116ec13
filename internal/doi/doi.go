// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doi validates, cleans, and extracts Digital Object Identifiers.
// The pattern set follows Crossref's published DOI regular expressions:
// https://www.crossref.org/blog/dois-and-matching-regular-expressions/
package doi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ResolverBase is the doi.org resolver prefix.
const ResolverBase = "https://doi.org/"

// patternSources are matched case-insensitively, in this order.
var patternSources = []string{
	// Generic: covers the vast majority of modern DOIs.
	`10.\d{4,9}/[-._;()/:A-Z0-9]+`,
	// Wiley: anything up to whitespace.
	`10.1002/[^\s]+`,
	// Legacy SICI-style citations with angle-bracket segments.
	`10.\d{4}/\d+-\d+X?(\d+)\d+<[\d\w]+:[\d\w]*>\d+.\d+.\w+;\dP`,
	// ACS.
	`10.1021/\w\w\d+`,
	// Lawrence Erlbaum.
	`10.1207/[\w\d]+\&\d+_\d+`,
}

var patterns = compilePatterns(patternSources)

func compilePatterns(sources []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(sources))
	for i, s := range sources {
		out[i] = regexp.MustCompile(`(?i)` + s)
	}
	return out
}

// fixes maps known bad transcriptions in the retraction dataset to their
// corrected form. Applied before trimming.
var fixes = map[string]string{
	"10.1177/ 0020720920940575": "10.1177/0020720920940575",
}

// placeholders are dataset values that stand in for a missing DOI.
var placeholders = []string{"unavailable"}

// trimSet is stripped from both ends of every candidate.
const trimSet = ". /"

var (
	// ErrEmpty is returned when the raw value is empty.
	ErrEmpty = errors.New("empty DOI")

	// ErrInvalid is the sentinel wrapped by every InvalidError.
	ErrInvalid = errors.New("invalid DOI")
)

// InvalidError reports a raw value that is not a DOI.
type InvalidError struct {
	Raw    string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid DOI %q: %s", e.Raw, e.Reason)
}

func (e *InvalidError) Unwrap() error {
	return ErrInvalid
}

// DOI is a validated identifier in canonical (cleaned) form.
type DOI struct {
	raw       string
	canonical string
}

// Parse cleans raw and validates the result. It returns ErrEmpty for an
// empty value and an *InvalidError for placeholders, values without a '/'
// separator, and values that match none of the DOI patterns.
func Parse(raw string) (DOI, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return DOI{}, ErrEmpty
	}
	if isPlaceholder(cleaned) {
		return DOI{}, &InvalidError{Raw: raw, Reason: "placeholder value"}
	}
	if !strings.Contains(cleaned, "/") {
		return DOI{}, &InvalidError{Raw: raw, Reason: "missing '/' separator"}
	}
	if !Matches(cleaned) {
		return DOI{}, &InvalidError{Raw: raw, Reason: "does not match any DOI pattern"}
	}
	return DOI{raw: raw, canonical: cleaned}, nil
}

// String returns the canonical form.
func (d DOI) String() string {
	return d.canonical
}

// Raw returns the value Parse was called with.
func (d DOI) Raw() string {
	return d.raw
}

// URL returns the doi.org resolver link.
func (d DOI) URL() string {
	return ResolverBase + d.canonical
}

// Clean applies the known fix-ups and strips '.', '/', and spaces from
// both ends. Clean is idempotent.
func Clean(s string) string {
	s = strings.Trim(fix(s), trimSet)
	// A trimmed value can itself be a known bad form.
	return strings.Trim(fix(s), trimSet)
}

func fix(s string) string {
	if fixed, ok := fixes[s]; ok {
		return fixed
	}
	return s
}

// Matches reports whether any DOI pattern matches somewhere in s.
func Matches(s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ExtractAll returns every pattern match in text, cleaned. Matches are
// grouped by pattern in pattern order, and kept in text order within a
// pattern; overlapping patterns yield duplicates. ExtractAll performs no
// separator or placeholder checks.
func ExtractAll(text string) []string {
	var out []string
	for _, p := range patterns {
		for _, m := range p.FindAllString(text, -1) {
			out = append(out, Clean(m))
		}
	}
	return out
}

func isPlaceholder(s string) bool {
	for _, p := range placeholders {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return false
}
