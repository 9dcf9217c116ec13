// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retraction loads the Retraction Watch dataset into a lookup table
// keyed by the canonical DOI of the retracted paper.
package retraction

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/transform"

	"github.com/pdiddy/ash/internal/doi"
	"github.com/pdiddy/ash/pkg/types"
)

// ErrMissingColumn is returned when the dataset header lacks the
// OriginalPaperDOI column.
var ErrMissingColumn = errors.New("dataset has no " + types.ColumnOriginalPaperDOI + " column")

const defaultTopInvalid = 5

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for the load summary.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithTopInvalid sets how many of the most frequent invalid identifiers the
// load summary lists.
func WithTopInvalid(n int) Option {
	return func(t *Table) {
		t.topInvalid = n
	}
}

// InvalidValue is a raw dataset identifier that failed to parse, with the
// number of rows carrying it.
type InvalidValue struct {
	Raw   string
	Count int
}

// Stats summarises a load.
type Stats struct {
	// Keys is the number of distinct canonical DOIs.
	Keys int
	// Rows is the number of rows retained.
	Rows int
	// Invalid is the number of rows skipped for an unusable identifier.
	Invalid int
	// InvalidValues tallies skipped rows by raw identifier.
	InvalidValues map[string]int
}

// TopInvalid returns the n most frequent invalid raw values, most frequent
// first. Ties are ordered by value.
func (s Stats) TopInvalid(n int) []InvalidValue {
	out := make([]InvalidValue, 0, len(s.InvalidValues))
	for raw, count := range s.InvalidValues {
		out = append(out, InvalidValue{Raw: raw, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Raw < out[j].Raw
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Table maps canonical DOIs to every dataset row about them. It reads the
// dataset on first use and keeps the result for its lifetime.
type Table struct {
	path       string
	logger     *slog.Logger
	topInvalid int

	once    sync.Once
	records map[string][]types.RetractionRecord
	stats   Stats
	err     error
}

// New returns a Table over the CSV file at path. Nothing is read until the
// first query.
func New(path string, opts ...Option) *Table {
	t := &Table{
		path:       path,
		logger:     slog.Default(),
		topInvalid: defaultTopInvalid,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Path returns the dataset location.
func (t *Table) Path() string {
	return t.path
}

// Load builds the table if it has not been built yet. Later calls return
// the outcome of the first.
func (t *Table) Load() error {
	t.once.Do(func() {
		t.err = t.build()
	})
	return t.err
}

// DOIs returns every key in the table, sorted.
func (t *Table) DOIs() ([]string, error) {
	if err := t.Load(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(t.records))
	for k := range t.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Records returns the rows for a canonical DOI in dataset order, or nil.
func (t *Table) Records(d string) ([]types.RetractionRecord, error) {
	if err := t.Load(); err != nil {
		return nil, err
	}
	return t.records[d], nil
}

// Contains reports whether any row names d.
func (t *Table) Contains(d string) (bool, error) {
	if err := t.Load(); err != nil {
		return false, err
	}
	_, ok := t.records[d]
	return ok, nil
}

// Stats returns the load summary.
func (t *Table) Stats() (Stats, error) {
	if err := t.Load(); err != nil {
		return Stats{}, err
	}
	return t.stats, nil
}

func (t *Table) build() error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("opening retraction dataset: %w", err)
	}
	defer f.Close()

	records, stats, err := parse(transform.NewReader(f, NewEscaper()))
	if err != nil {
		return fmt.Errorf("reading %s: %w", t.path, err)
	}
	t.records = records
	t.stats = stats

	top := stats.TopInvalid(t.topInvalid)
	common := make([]string, len(top))
	for i, v := range top {
		common[i] = fmt.Sprintf("%q x%d", v.Raw, v.Count)
	}
	t.logger.Info("loaded retraction dataset",
		"path", t.path,
		"dois", stats.Keys,
		"rows", stats.Rows,
		"invalid", stats.Invalid,
		"top_invalid", strings.Join(common, ", "),
	)
	return nil
}

// parse reads a header row and every data row. Rows are appended under
// their canonical DOI, never merged or replaced.
func parse(r io.Reader) (map[string][]types.RetractionRecord, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	stats := Stats{InvalidValues: make(map[string]int)}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, ErrMissingColumn
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	column := -1
	for i, name := range header {
		if name == types.ColumnOriginalPaperDOI {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, stats, ErrMissingColumn
	}

	records := make(map[string][]types.RetractionRecord)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading row: %w", err)
		}

		raw := ""
		if column < len(row) {
			raw = row[column]
		}
		d, err := doi.Parse(raw)
		if err != nil {
			stats.Invalid++
			stats.InvalidValues[raw]++
			continue
		}

		rec := make(types.RetractionRecord, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records[d.String()] = append(records[d.String()], rec)
		stats.Rows++
	}

	stats.Keys = len(records)
	return records, stats, nil
}
