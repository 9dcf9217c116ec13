// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pdiddy/ash/pkg/types"
)

// ErrNoChecker is returned when validation is requested without a checker.
var ErrNoChecker = errors.New("validation requested but no existence checker configured")

// LookupTable is the part of the retraction table a report needs.
type LookupTable interface {
	Records(doi string) ([]types.RetractionRecord, error)
}

// ExistenceChecker answers whether a DOI is registered.
type ExistenceChecker interface {
	Exists(ctx context.Context, doi string) (types.Existence, error)
}

// Options controls report generation.
type Options struct {
	// Validate asks Checker about every identifier. When false no network
	// request is made.
	Validate bool
	Checker  ExistenceChecker
	Logger   *slog.Logger
}

// Report cross-references the paper's identifiers against table.
//
// Every distinct identifier gets an entry. Each dataset row about a cited
// identifier becomes one zombie; zombies are ordered by DOI and keep
// dataset order within a DOI. A checker failure for one identifier is
// logged and leaves its validity unknown.
func (p *Paper) Report(ctx context.Context, table LookupTable, opts Options) (*types.Report, error) {
	if opts.Validate && opts.Checker == nil {
		return nil, ErrNoChecker
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	report := &types.Report{
		Identifiers: make(map[string]types.IdentifierStatus),
		Zombies:     []types.Zombie{},
	}

	for _, id := range p.Unique() {
		records, err := table.Records(id)
		if err != nil {
			return nil, fmt.Errorf("looking up %s: %w", id, err)
		}

		status := types.IdentifierStatus{Retracted: len(records) > 0}
		if opts.Validate {
			existence, err := opts.Checker.Exists(ctx, id)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				logger.Warn("existence check failed", "doi", id, "error", err)
			}
			status.Valid = existence.Bool()
		}
		report.Identifiers[id] = status

		for _, rec := range records {
			report.Zombies = append(report.Zombies, types.Zombie{
				DOI:       id,
				Nature:    rec.Nature(),
				Date:      rec.Date(),
				NoticeURL: rec.NoticeURL(),
			})
		}
	}

	sort.SliceStable(report.Zombies, func(i, j int) bool {
		return report.Zombies[i].DOI < report.Zombies[j].DOI
	})
	return report, nil
}
