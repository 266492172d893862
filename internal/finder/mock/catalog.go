package mock

import (
	"context"
	"strings"

	"github.com/xdccfind/xdccfind/internal/finder"
)

// CatalogName is the finder name of the demo catalog.
const CatalogName = "mock"

// Item is one package in the demo catalog.
type Item struct {
	Entry   finder.Entry
	Episode int
}

// Catalog is a finder backed by a static list of packages. Matching is a
// case-insensitive substring match of the search text and resolution
// against the file name.
type Catalog struct {
	items []Item
}

// Ensure Catalog implements finder.Finder.
var _ finder.Finder = (*Catalog)(nil)

// NewCatalog creates a catalog finder. With no items it uses the built-in
// demo data.
func NewCatalog(items ...Item) *Catalog {
	if len(items) == 0 {
		items = demoItems()
	}
	return &Catalog{items: items}
}

func (c *Catalog) Name() string {
	return CatalogName
}

// Test always succeeds.
func (c *Catalog) Test(ctx context.Context) error {
	return nil
}

func (c *Catalog) Find(ctx context.Context, q finder.Query) ([]finder.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, finder.NewTransportError(CatalogName, err)
	}

	search := strings.ToLower(q.Search)
	resolution := strings.ToLower(q.Resolution)

	matched := make([]Item, 0)
	latest := 1
	for _, item := range c.items {
		name := strings.ToLower(item.Entry.Name)
		if !strings.Contains(name, search) || !strings.Contains(name, resolution) {
			continue
		}
		if len(matched) == 0 || item.Episode > latest {
			latest = item.Episode
		}
		matched = append(matched, item)
	}

	entries := make([]finder.Entry, 0, len(matched))
	for _, item := range matched {
		if q.Episode.Matches(item.Episode, latest) {
			entries = append(entries, item.Entry)
		}
	}
	return entries, nil
}

func demoItems() []Item {
	const (
		botA = "CR-HOLLAND|NEW"
		botB = "Ginpachi-Sensei"
	)
	return []Item{
		{Episode: 1, Entry: finder.Entry{PackageNumber: 101, BotID: 1, BotName: botA, Name: "[SubsPlease] Frieren - 01 (1080p).mkv", Size: "1.4G"}},
		{Episode: 2, Entry: finder.Entry{PackageNumber: 102, BotID: 1, BotName: botA, Name: "[SubsPlease] Frieren - 02 (1080p).mkv", Size: "1.4G"}},
		{Episode: 3, Entry: finder.Entry{PackageNumber: 103, BotID: 1, BotName: botA, Name: "[SubsPlease] Frieren - 03 (1080p).mkv", Size: "1.3G"}},
		{Episode: 3, Entry: finder.Entry{PackageNumber: 2203, BotID: 2, BotName: botB, Name: "[SubsPlease] Frieren - 03 (720p).mkv", Size: "700M"}},
		{Episode: 12, Entry: finder.Entry{PackageNumber: 512, BotID: 2, BotName: botB, Name: "[Erai-raws] Dungeon Meshi - 12 [1080p].mkv", Size: "1.4G"}},
	}
}
