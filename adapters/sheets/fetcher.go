package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"pincheck/internal"
	apperrors "pincheck/internal/errors"
	"pincheck/ports"
)

// UserAgent identifies the checker to Google's frontends. Kept from the
// original deployment; the anonymous default gets served consent pages.
const UserAgent = "Mozilla/5.0 (compatible; ServiceabilityBot/1.0)"

// DefaultTimeout bounds each candidate attempt.
const DefaultTimeout = 20 * time.Second

// ExhaustedError reports that every candidate endpoint failed or returned
// non-tabular content. It carries the full attempt log for the operator.
type ExhaustedError struct {
	Attempts []ports.FetchAttempt
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	msg := fmt.Sprintf("could not fetch CSV: all %d candidate endpoints failed", len(e.Attempts))
	if e.LastErr != nil {
		msg += fmt.Sprintf(", last error: %v", e.LastErr)
	}
	return msg
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// Fetcher retrieves the serviceability sheet, walking candidate endpoints
// until one yields tabular content.
type Fetcher struct {
	source     Source
	httpClient *http.Client
	logger     *internal.Logger
}

var _ ports.SheetFetcherPort = (*Fetcher)(nil)

// NewFetcher creates a fetcher for the given source. A non-positive
// timeout falls back to DefaultTimeout.
func NewFetcher(source Source, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		source: source,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: internal.NewDefaultLogger(),
	}
}

// FetchFirstTabular walks the expanded candidate list in order and returns
// the first tabular body together with the attempt log. Transport failures
// and non-tabular responses advance to the next candidate; only full
// exhaustion is an error.
func (f *Fetcher) FetchFirstTabular(ctx context.Context) (string, []ports.FetchAttempt, error) {
	return f.fetchCandidates(ctx, Candidates(f.source))
}

func (f *Fetcher) fetchCandidates(ctx context.Context, urls []string) (string, []ports.FetchAttempt, error) {
	attempts := make([]ports.FetchAttempt, 0, len(urls))
	var lastErr error

	for _, candidate := range urls {
		body, outcome, err := f.fetchOne(ctx, candidate)
		attempts = append(attempts, ports.FetchAttempt{URL: candidate, Outcome: outcome})

		if err != nil {
			f.logger.Warn("[Fetcher] %s: %v", candidate, err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if !LooksTabular(body) {
			f.logger.Warn("[Fetcher] %s: response is not tabular", candidate)
			lastErr = apperrors.NonTabular(candidate)
			continue
		}

		f.logger.Info("[Fetcher] fetched %d bytes from %s", len(body), candidate)
		return body, attempts, nil
	}

	err := &ExhaustedError{Attempts: attempts, LastErr: lastErr}
	return "", attempts, apperrors.SourceExhausted(err.Error(), err)
}

// fetchOne performs a single bounded GET. The outcome string lands in the
// attempt log: "HTTP <status>", optionally marked non-tabular, or
// "EXC:<kind>" for transport failures.
func (f *Fetcher) fetchOne(ctx context.Context, candidate string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
	if err != nil {
		return "", "EXC:BadRequest", apperrors.TransportFailed(candidate, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", classifyFetchError(err), apperrors.TransportFailed(candidate, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyFetchError(err), apperrors.TransportFailed(candidate, err)
	}

	if resp.StatusCode/100 != 2 {
		return "", fmt.Sprintf("HTTP %d", resp.StatusCode),
			apperrors.TransportFailed(candidate, fmt.Errorf("status %d", resp.StatusCode))
	}

	text := string(body)
	if !LooksTabular(text) {
		return text, fmt.Sprintf("HTTP %d (non-tabular)", resp.StatusCode), nil
	}
	return text, fmt.Sprintf("HTTP %d", resp.StatusCode), nil
}

func classifyFetchError(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "EXC:Timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "EXC:Canceled"
	}
	return "EXC:RequestError"
}
