package ports

import "context"

// FetchAttempt records the outcome of one candidate endpoint, kept even
// when a later candidate succeeds so operators can see the full walk.
type FetchAttempt struct {
	URL     string `json:"url"`
	Outcome string `json:"outcome"`
}

// SheetFetcherPort retrieves the raw serviceability sheet. Implementations
// walk candidate endpoints in order and return the first tabular body
// together with the attempt log; the last attempt is the one that
// succeeded.
type SheetFetcherPort interface {
	FetchFirstTabular(ctx context.Context) (string, []FetchAttempt, error)
}
