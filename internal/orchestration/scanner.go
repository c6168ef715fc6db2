// Package orchestration ties the goal store, the detector registry and the
// source corpus together into a single scan.
package orchestration

import (
	"context"
	"log/slog"
	"time"

	"github.com/solarreach/goalscan/internal/checks"
	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/goals"
	"github.com/solarreach/goalscan/internal/models"
	"github.com/solarreach/goalscan/internal/reporting"
)

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithWorkers limits how many detectors run at once. n <= 0 means no limit.
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		s.workers = n
	}
}

// WithClock overrides the time source used to stamp reports.
func WithClock(now func() time.Time) ScannerOption {
	return func(s *Scanner) {
		s.now = now
	}
}

// Scanner produces goal reports on demand. It holds no per-scan state, so
// one Scanner may serve concurrent requests.
type Scanner struct {
	store    goals.GoalStore
	registry *checks.Registry
	corpus   *corpus.Corpus
	workers  int
	now      func() time.Time
}

// NewScanner creates a Scanner.
func NewScanner(store goals.GoalStore, registry *checks.Registry, c *corpus.Corpus, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		store:    store,
		registry: registry,
		corpus:   c,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan loads the goals, runs every detector and merges the results. Only a
// broken goal store or a cancelled context produce an error; detector
// problems are reported inside the affected entry.
func (s *Scanner) Scan(ctx context.Context) ([]models.ReportEntry, error) {
	stored, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	checked := s.now().UTC()
	results, err := checks.RunAll(ctx, s.registry, s.corpus, s.workers)
	if err != nil {
		return nil, err
	}

	entries := reporting.Aggregate(stored, s.registry, results, checked)
	slog.Debug("scan complete", "root", s.corpus.Root, "goals", len(entries), "duration", time.Since(checked))
	return entries, nil
}

// Root returns the directory being scanned.
func (s *Scanner) Root() string {
	return s.corpus.Root
}
