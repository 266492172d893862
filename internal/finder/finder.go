// Package finder defines the search query, result entry and Finder
// abstraction shared by every XDCC search backend.
package finder

import (
	"context"
	"fmt"
)

// Finder is anything that can turn a Query into a list of entries.
type Finder interface {
	// Name returns the finder name used in logs and errors.
	Name() string

	// Find runs the query against the backend.
	Find(ctx context.Context, q Query) ([]Entry, error)
}

// Query describes a search request. Queries are plain values and can be
// compared with == or used as map keys.
type Query struct {
	Search     string        `json:"search" yaml:"search"`
	Resolution string        `json:"resolution" yaml:"resolution"`
	Episode    EpisodeNumber `json:"episode" yaml:"episode"`
}

// NewQuery creates a new query.
func NewQuery(search, resolution string, episode EpisodeNumber) Query {
	return Query{
		Search:     search,
		Resolution: resolution,
		Episode:    episode,
	}
}

// Find runs the query against a single finder.
func (q Query) Find(ctx context.Context, f Finder) ([]Entry, error) {
	return f.Find(ctx, q)
}

// FindMany runs the query against each finder in order and concatenates the
// results. The first error aborts the whole search: finders after the
// failing one are not called and results already collected are dropped.
func (q Query) FindMany(ctx context.Context, finders []Finder) ([]Entry, error) {
	entries := make([]Entry, 0)
	for _, f := range finders {
		found, err := f.Find(ctx, q)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}
	return entries, nil
}

// UnknownBot is the bot name used when a package references a bot that is
// missing from the bot directory.
const UnknownBot = "unknown bot?"

// Entry is one file offered by a bot.
type Entry struct {
	PackageNumber int    `json:"packageNumber" yaml:"packageNumber"`
	BotID         int64  `json:"botId" yaml:"botId"`
	BotName       string `json:"botName" yaml:"botName"`
	Name          string `json:"name" yaml:"name"`
	Size          string `json:"size" yaml:"size"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s [%s] (%s)", e.Name, e.BotName, e.Size)
}
