package app

import (
	"context"
	"sync"
	"time"

	"pincheck/domain/core"
	"pincheck/domain/serviceability"
	"pincheck/internal"
	apperrors "pincheck/internal/errors"

	"golang.org/x/sync/singleflight"
)

// CheckerService answers serviceability queries against a cached copy of
// the remote sheet. The copy is reloaded after its TTL expires; concurrent
// reloads collapse into a single fetch, and a failed reload falls back to
// the previous copy rather than failing the query.
type CheckerService struct {
	loader *LoaderService
	ttl    time.Duration
	logger *internal.Logger

	group singleflight.Group

	mu     sync.RWMutex
	cached *LoadedTable
}

// NewCheckerService creates a checker. A non-positive TTL disables
// caching, so every query reloads the sheet.
func NewCheckerService(loader *LoaderService, ttl time.Duration) *CheckerService {
	return &CheckerService{
		loader: loader,
		ttl:    ttl,
		logger: internal.NewDefaultLogger(),
	}
}

// Check answers one serviceability query. Input validation happens before
// any fetch, so malformed queries never cost a network round trip.
func (s *CheckerService) Check(ctx context.Context, serviceRaw, pincodeRaw string) (*serviceability.Result, error) {
	svc, err := core.ParseServiceType(serviceRaw)
	if err != nil {
		return nil, apperrors.InvalidService(err.Error())
	}
	pin, err := core.ParsePincode(pincodeRaw)
	if err != nil {
		return nil, apperrors.InvalidPincode(err.Error())
	}

	lt, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	row, ok := lt.Table.RowByPincode(pin)
	if !ok {
		return nil, apperrors.PincodeNotFound(pin)
	}

	result := serviceability.Evaluate(row, lt.Resolution.Fields, svc)
	// The sheet cell may carry noise like "IN 110 002"; answer with the
	// canonical six digits the caller asked about.
	result.Pincode = pin
	return &result, nil
}

// Table returns the current loaded table, reloading when the cached copy
// has expired.
func (s *CheckerService) Table(ctx context.Context) (*LoadedTable, error) {
	if lt := s.fresh(); lt != nil {
		return lt, nil
	}

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		// A caller that queued behind the winning flight finds the
		// fresh copy here instead of loading again.
		if lt := s.fresh(); lt != nil {
			return lt, nil
		}

		lt, err := s.loader.Load(ctx)
		if err != nil {
			if stale := s.current(); stale != nil {
				s.logger.Warn("[Checker] reload failed, serving copy from %s: %v",
					stale.LoadedAt.Format(time.RFC3339), err)
				return stale, nil
			}
			return nil, err
		}

		s.mu.Lock()
		prev := s.cached
		s.cached = lt
		s.mu.Unlock()
		if prev != nil && prev.ContentHash.Equals(lt.ContentHash) {
			s.logger.Info("[Checker] reload returned unchanged content %s", lt.ContentHash.Short())
		}
		return lt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LoadedTable), nil
}

// Cached returns the cached copy without triggering a load; nil when
// nothing has been loaded yet.
func (s *CheckerService) Cached() *LoadedTable {
	return s.current()
}

// Invalidate drops the cached copy so the next query reloads.
func (s *CheckerService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	s.logger.Info("[Checker] cache invalidated")
}

// fresh returns the cached copy only while it is within TTL.
func (s *CheckerService) fresh() *LoadedTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return nil
	}
	if s.ttl > 0 && time.Since(s.cached.LoadedAt) < s.ttl {
		return s.cached
	}
	return nil
}

// current returns the cached copy regardless of age.
func (s *CheckerService) current() *LoadedTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}
