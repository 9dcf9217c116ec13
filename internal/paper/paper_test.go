// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ash/internal/dispatch"
	"github.com/pdiddy/ash/internal/retraction"
	"github.com/pdiddy/ash/pkg/types"
)

const (
	unretractedText  = "A DOI here 10.21105/joss.03440 and that's all for now."
	mockedRetraction = "This is retracted 10.1234/retracted12349 in mock db."
	mockDatabase     = "../retraction/testdata/rw_database.csv"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// countingChecker answers from a fixed table and counts calls.
type countingChecker struct {
	answers map[string]types.Existence
	errs    map[string]error
	calls   int
}

func (c *countingChecker) Exists(_ context.Context, doi string) (types.Existence, error) {
	c.calls++
	if err, ok := c.errs[doi]; ok {
		return types.ExistenceUnknown, err
	}
	return c.answers[doi], nil
}

func mockTable() *retraction.Table {
	return retraction.New(mockDatabase, retraction.WithLogger(quiet))
}

func boolPtr(b bool) *bool {
	return &b
}

func TestFromStringUnretracted(t *testing.T) {
	p, err := FromString(unretractedText, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.21105/joss.03440"}, p.Identifiers())
	assert.Equal(t, types.ContentTextPlain, p.ContentType())

	report, err := p.Report(context.Background(), mockTable(), Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.IdentifierStatus{
		"10.21105/joss.03440": {Valid: nil, Retracted: false},
	}, report.Identifiers)
	assert.Empty(t, report.Zombies)
}

func TestReportZombiePerRow(t *testing.T) {
	p, err := FromString(mockedRetraction, types.ContentTeX, dispatch.NewRegistry())
	require.NoError(t, err)

	report, err := p.Report(context.Background(), mockTable(), Options{})
	require.NoError(t, err)

	assert.True(t, report.Identifiers["10.1234/retracted12349"].Retracted)
	assert.Equal(t, []types.Zombie{
		{
			DOI:       "10.1234/retracted12349",
			Nature:    "Retraction",
			Date:      "8/16/2021 0:00",
			NoticeURL: "https://doi.org/10.1234/notice0001",
		},
		{
			DOI:       "10.1234/retracted12349",
			Nature:    "Expression of concern",
			Date:      "1/02/2022 0:00",
			NoticeURL: "https://doi.org/10.1234/notice0002",
		},
	}, report.Zombies)
	assert.Equal(t, []string{"10.1234/retracted12349"}, report.Retracted())
}

func TestReportZombiesSortedByDOI(t *testing.T) {
	text := "Later 10.1234/retracted12349 and earlier 10.1038/478026a and clean 10.21105/joss.03440."
	p, err := FromString(text, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)

	report, err := p.Report(context.Background(), mockTable(), Options{})
	require.NoError(t, err)

	require.Len(t, report.Zombies, 3)
	assert.Equal(t, "10.1038/478026a", report.Zombies[0].DOI)
	assert.Equal(t, "10.1234/retracted12349", report.Zombies[1].DOI)
	assert.Equal(t, "10.1234/retracted12349", report.Zombies[2].DOI)
	assert.Len(t, report.Identifiers, 3)
	assert.False(t, report.Identifiers["10.21105/joss.03440"].Retracted)
}

func TestReportOfflineMakesNoCalls(t *testing.T) {
	p, err := FromString(mockedRetraction+" "+unretractedText, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)
	checker := &countingChecker{}

	report, err := p.Report(context.Background(), mockTable(), Options{Validate: false, Checker: checker})
	require.NoError(t, err)

	assert.Zero(t, checker.calls)
	for id, status := range report.Identifiers {
		assert.Nil(t, status.Valid, id)
	}
}

func TestReportValidate(t *testing.T) {
	text := "10.21105/joss.03440 10.9999/missing1 10.1038/478026a 10.21105/joss.03440 10.1087/20110208"
	p, err := FromString(text, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)

	checker := &countingChecker{
		answers: map[string]types.Existence{
			"10.21105/joss.03440": types.ExistenceTrue,
			"10.9999/missing1":    types.ExistenceFalse,
			"10.1038/478026a":     types.ExistenceUnknown,
		},
		errs: map[string]error{"10.1087/20110208": errors.New("connection reset")},
	}

	report, err := p.Report(context.Background(), mockTable(), Options{Validate: true, Checker: checker, Logger: quiet})
	require.NoError(t, err)

	assert.Equal(t, 4, checker.calls)
	assert.Equal(t, boolPtr(true), report.Identifiers["10.21105/joss.03440"].Valid)
	assert.Equal(t, boolPtr(false), report.Identifiers["10.9999/missing1"].Valid)
	assert.Nil(t, report.Identifiers["10.1038/478026a"].Valid)
	assert.True(t, report.Identifiers["10.1038/478026a"].Retracted)
	assert.Nil(t, report.Identifiers["10.1087/20110208"].Valid)
}

func TestReportValidateWithoutChecker(t *testing.T) {
	p, err := FromString(unretractedText, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)

	_, err = p.Report(context.Background(), mockTable(), Options{Validate: true})
	assert.ErrorIs(t, err, ErrNoChecker)
}

func TestReportIsRepeatable(t *testing.T) {
	p, err := FromString(mockedRetraction+" "+mockedRetraction, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)
	assert.Len(t, p.Identifiers(), 2)
	assert.Equal(t, []string{"10.1234/retracted12349"}, p.Unique())

	table := mockTable()
	first, err := p.Report(context.Background(), table, Options{})
	require.NoError(t, err)
	second, err := p.Report(context.Background(), table, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first.Zombies, 2)
}

func TestReportTableError(t *testing.T) {
	p, err := FromString(unretractedText, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)

	table := retraction.New(filepath.Join(t.TempDir(), "absent.csv"), retraction.WithLogger(quiet))
	_, err = p.Report(context.Background(), table, Options{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewUnsupportedContentType(t *testing.T) {
	_, err := FromString(unretractedText, "image/png", dispatch.NewRegistry())
	assert.ErrorIs(t, err, dispatch.ErrUnsupportedContentType)
}

func TestNewSniffsEmptyContentType(t *testing.T) {
	p, err := FromString(unretractedText, "", dispatch.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, types.ContentTextPlain, p.ContentType())
	assert.Equal(t, []string{"10.21105/joss.03440"}, p.Identifiers())
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.tex")
	require.NoError(t, os.WriteFile(path, []byte(mockedRetraction), 0o644))

	p, err := FromPath(path, dispatch.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, types.ContentTeX, p.ContentType())
	assert.Equal(t, []string{"10.1234/retracted12349"}, p.Identifiers())
}

func TestFromPathMissing(t *testing.T) {
	_, err := FromPath(filepath.Join(t.TempDir(), "absent.pdf"), dispatch.NewRegistry())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIdentifiersReturnsCopy(t *testing.T) {
	p, err := FromString(unretractedText, types.ContentTextPlain, dispatch.NewRegistry())
	require.NoError(t, err)

	ids := p.Identifiers()
	ids[0] = "mutated"
	assert.Equal(t, []string{"10.21105/joss.03440"}, p.Identifiers())
}
