package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/lookup/internal/domain/query"
	"github.com/kailas-cloud/lookup/internal/domain/record"
)

// DefaultDelay is the artificial latency applied to every valid search.
const DefaultDelay = time.Second

// Search outcomes reported to the Observer.
const (
	OutcomeMatched  = "matched"
	OutcomeEmpty    = "empty"
	OutcomeInvalid  = "invalid"
	OutcomeCanceled = "canceled"
)

// Service filters the record table by email and optional number.
type Service struct {
	records RecordReader
	delay   time.Duration
	obs     Observer
}

// New creates a search service. A non-positive delay disables the wait.
func New(records RecordReader, delay time.Duration) *Service {
	return &Service{records: records, delay: delay}
}

// WithObserver attaches an outcome observer.
func (s *Service) WithObserver(obs Observer) *Service {
	s.obs = obs
	return s
}

// Search validates the raw query and returns the matching records in table order.
// Invalid input returns *domain.ValidationError at once; valid input waits out the
// configured delay first. The result is never nil.
func (s *Service) Search(ctx context.Context, email, number string) ([]record.Record, error) {
	start := time.Now()

	q, err := query.New(email, number)
	if err != nil {
		s.observe(OutcomeInvalid, 0, start)
		return nil, fmt.Errorf("search: %w", err)
	}

	if err := s.wait(ctx); err != nil {
		s.observe(OutcomeCanceled, 0, start)
		return nil, fmt.Errorf("search delay: %w", err)
	}

	results := make([]record.Record, 0)
	for r := range s.records.All() {
		if q.Matches(&r) {
			results = append(results, r)
		}
	}

	if len(results) == 0 {
		s.observe(OutcomeEmpty, 0, start)
	} else {
		s.observe(OutcomeMatched, len(results), start)
	}
	return results, nil
}

// wait blocks for the configured delay. It ends early only if ctx is done.
func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) observe(outcome string, results int, start time.Time) {
	if s.obs != nil {
		s.obs.ObserveSearch(outcome, results, time.Since(start))
	}
}
