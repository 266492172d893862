// Package mock provides in-memory finders for tests and offline use.
package mock

import (
	"context"
	"sync"

	"github.com/xdccfind/xdccfind/internal/finder"
)

// Finder returns a fixed set of entries or a fixed error and records the
// queries it receives.
type Finder struct {
	name    string
	entries []finder.Entry
	err     error

	mu      sync.Mutex
	queries []finder.Query
}

// Ensure Finder implements finder.Finder.
var _ finder.Finder = (*Finder)(nil)

// NewFinder creates a finder that always returns entries.
func NewFinder(name string, entries ...finder.Entry) *Finder {
	return &Finder{name: name, entries: entries}
}

// NewFailingFinder creates a finder that always returns err.
func NewFailingFinder(name string, err error) *Finder {
	return &Finder{name: name, err: err}
}

func (f *Finder) Name() string {
	return f.name
}

func (f *Finder) Find(ctx context.Context, q finder.Query) ([]finder.Entry, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	out := make([]finder.Entry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

// Calls returns how many times Find was called.
func (f *Finder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// Queries returns the queries received so far.
func (f *Finder) Queries() []finder.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]finder.Query, len(f.queries))
	copy(out, f.queries)
	return out
}
