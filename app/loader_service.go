package app

import (
	"context"
	"fmt"
	"time"

	"pincheck/adapters/sheets"
	"pincheck/domain/core"
	"pincheck/domain/schema"
	"pincheck/internal"
	apperrors "pincheck/internal/errors"
	"pincheck/ports"
)

// SchemaError reports a sheet that fetched fine but could not be resolved.
// It keeps the fetch context so the operator sees which endpoint produced
// the unresolvable shape.
type SchemaError struct {
	Headers  []string
	Attempts []ports.FetchAttempt
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v (after %d fetch attempt(s))", e.Err, len(e.Attempts))
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// LoadedTable is one fully prepared load of the remote sheet: decoded,
// schema-resolved, synthetic columns materialized, rows indexed by
// digits-only pincode.
type LoadedTable struct {
	Table       *core.Table
	Resolution  *schema.Resolution
	Attempts    []ports.FetchAttempt
	SourceURL   string
	ContentHash core.ContentHash
	LoadedAt    time.Time
}

// LoaderService orchestrates one load of the remote sheet: fetch the first
// tabular candidate, decode it, resolve the drifting headers, and prepare
// the table for lookups.
type LoaderService struct {
	fetcher ports.SheetFetcherPort
	logger  *internal.Logger
}

// NewLoaderService creates a loader backed by the given fetcher.
func NewLoaderService(fetcher ports.SheetFetcherPort) *LoaderService {
	return &LoaderService{
		fetcher: fetcher,
		logger:  internal.NewDefaultLogger(),
	}
}

// Load performs one complete load. A body that passed the tabular sniff
// but fails CSV parsing is reported as non-tabular; a sheet without a
// recognizable pincode column is a schema resolution failure.
func (s *LoaderService) Load(ctx context.Context) (*LoadedTable, error) {
	body, attempts, err := s.fetcher.FetchFirstTabular(ctx)
	if err != nil {
		return nil, err
	}

	sourceURL := ""
	if len(attempts) > 0 {
		sourceURL = attempts[len(attempts)-1].URL
	}

	table, err := sheets.DecodeCSV(body)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeNonTabular, err)
	}

	resolution, err := schema.BuildFieldMap(table.Headers)
	if err != nil {
		return nil, apperrors.SchemaResolutionFailure(&SchemaError{
			Headers:  table.Headers,
			Attempts: attempts,
			Err:      err,
		})
	}
	for _, col := range resolution.Synthetic {
		s.logger.Warn("[Loader] no column matched %q, defaulting it to not serviceable", col)
		table.AddSyntheticColumn(col, "no")
	}

	table.ProjectPincodes(resolution.Fields.Pincode())

	hash := core.HashContent([]byte(body))
	s.logger.Info("[Loader] loaded %d rows from %s after %d attempt(s), content %s",
		table.Len(), sourceURL, len(attempts), hash.Short())

	return &LoadedTable{
		Table:       table,
		Resolution:  resolution,
		Attempts:    attempts,
		SourceURL:   sourceURL,
		ContentHash: hash,
		LoadedAt:    time.Now(),
	}, nil
}
