// Package search runs queries against the configured finders.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xdccfind/xdccfind/internal/config"
	"github.com/xdccfind/xdccfind/internal/finder"
	"github.com/xdccfind/xdccfind/internal/finder/mock"
	"github.com/xdccfind/xdccfind/internal/finder/nibl"
)

// Result contains the entries found for one search.
type Result struct {
	ID        string         `json:"id" yaml:"id"`
	Query     finder.Query   `json:"query" yaml:"query"`
	Finders   []string       `json:"finders" yaml:"finders"`
	Entries   []finder.Entry `json:"entries" yaml:"entries"`
	ElapsedMs int64          `json:"elapsedMs" yaml:"elapsedMs"`
}

// Service runs queries against an ordered list of finders.
type Service struct {
	finders []finder.Finder
	logger  zerolog.Logger
}

// NewService creates a new search service.
func NewService(finders []finder.Finder, logger zerolog.Logger) *Service {
	return &Service{
		finders: finders,
		logger:  logger.With().Str("component", "search").Logger(),
	}
}

// Finders returns the names of the configured finders in query order.
func (s *Service) Finders() []string {
	names := make([]string, len(s.finders))
	for i, f := range s.finders {
		names[i] = f.Name()
	}
	return names
}

// Tester is implemented by finders that can check their backend.
type Tester interface {
	Test(ctx context.Context) error
}

// FinderStatus is the outcome of checking one finder.
type FinderStatus struct {
	Name      string `json:"name" yaml:"name"`
	Checked   bool   `json:"checked" yaml:"checked"`
	Healthy   bool   `json:"healthy" yaml:"healthy"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	ElapsedMs int64  `json:"elapsedMs" yaml:"elapsedMs"`
}

// Check tests every finder that supports it. Unlike Search, a failing
// finder does not stop the remaining checks.
func (s *Service) Check(ctx context.Context) []FinderStatus {
	statuses := make([]FinderStatus, 0, len(s.finders))
	for _, f := range s.finders {
		status := FinderStatus{Name: f.Name()}
		tester, ok := f.(Tester)
		if !ok {
			statuses = append(statuses, status)
			continue
		}

		start := time.Now()
		err := tester.Test(ctx)
		status.Checked = true
		status.ElapsedMs = time.Since(start).Milliseconds()
		if err != nil {
			status.Error = err.Error()
			s.logger.Warn().Err(err).Str("finder", status.Name).Msg("Finder check failed")
		} else {
			status.Healthy = true
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// Search runs the query against every finder. Any finder error fails the
// whole search.
func (s *Service) Search(ctx context.Context, q finder.Query) (*Result, error) {
	id := uuid.New().String()
	start := time.Now()

	logger := s.logger.With().Str("searchId", id).Logger()
	logger.Info().
		Str("search", q.Search).
		Str("resolution", q.Resolution).
		Stringer("episode", q.Episode).
		Strs("finders", s.Finders()).
		Msg("Starting search")

	entries, err := q.FindMany(ctx, s.finders)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("Search failed")
		return nil, err
	}

	logger.Info().
		Int("entries", len(entries)).
		Dur("elapsed", elapsed).
		Msg("Search completed")

	return &Result{
		ID:        id,
		Query:     q,
		Finders:   s.Finders(),
		Entries:   entries,
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}

// BuildFinders creates the finders named in names, in order.
func BuildFinders(names []string, cfg *config.Config, logger zerolog.Logger) ([]finder.Finder, error) {
	finders := make([]finder.Finder, 0, len(names))
	for _, name := range names {
		switch name {
		case config.FinderNibl:
			finders = append(finders, nibl.NewClient(cfg.Nibl, logger))
		case config.FinderMock:
			finders = append(finders, mock.NewCatalog())
		default:
			return nil, fmt.Errorf("unknown finder %q", name)
		}
	}
	return finders, nil
}
