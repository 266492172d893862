// Package nibl implements a finder backed by the nibl.co.uk XDCC index API.
package nibl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xdccfind/xdccfind/internal/config"
	"github.com/xdccfind/xdccfind/internal/finder"
)

// APIName identifies this API in errors.
const APIName = "nibl"

// DefaultBaseURL is the public nibl API root.
const DefaultBaseURL = "https://api.nibl.co.uk/nibl"

const statusOK = "OK"

const maxResponseSize = 10 * 1024 * 1024 // 10 MB

// Client is a nibl API client.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	concurrentFetch bool
	logger          zerolog.Logger
}

// Ensure Client implements finder.Finder.
var _ finder.Finder = (*Client)(nil)

// NewClient creates a new nibl client.
func NewClient(cfg config.NiblConfig, logger zerolog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:         baseURL,
		concurrentFetch: cfg.ConcurrentFetch,
		logger:          logger.With().Str("component", "nibl").Logger(),
	}
}

// Name returns the finder name.
func (c *Client) Name() string {
	return APIName
}

// Test verifies connectivity to the nibl API by fetching the bot list.
func (c *Client) Test(ctx context.Context) error {
	bots, err := c.Bots(ctx)
	if err != nil {
		return err
	}
	if len(bots) == 0 {
		return finder.NewAPIError(APIName, "bot list is empty")
	}
	return nil
}

// SearchPackages returns the packages matching the query's search text and
// resolution. The episode number is only sent to the API when the query
// asks for a specific episode.
func (c *Client) SearchPackages(ctx context.Context, q finder.Query) ([]Package, error) {
	params := url.Values{}
	params.Set("query", strings.Join([]string{q.Search, q.Resolution}, " "))
	if n, ok := q.Episode.Number(); ok {
		params.Set("episodeNumber", strconv.Itoa(n))
	}

	var response searchResponse
	if err := c.doRequest(ctx, c.baseURL+"/search", params, &response); err != nil {
		return nil, err
	}
	if response.Status != statusOK {
		c.logger.Warn().Str("status", response.Status).Str("message", response.Message).Msg("Search rejected by API")
		return nil, finder.NewAPIError(APIName, response.Message)
	}

	c.logger.Debug().
		Str("search", q.Search).
		Str("resolution", q.Resolution).
		Stringer("episode", q.Episode).
		Int("packages", len(response.Content)).
		Msg("Package search completed")

	return response.Content, nil
}

// Bots returns the bot directory keyed by bot ID. Later records win when
// the directory contains duplicate IDs.
func (c *Client) Bots(ctx context.Context) (map[int64]Bot, error) {
	var response botsResponse
	if err := c.doRequest(ctx, c.baseURL+"/bots", nil, &response); err != nil {
		return nil, err
	}
	if response.Status != statusOK {
		c.logger.Warn().Str("status", response.Status).Str("message", response.Message).Msg("Bot list rejected by API")
		return nil, finder.NewAPIError(APIName, response.Message)
	}

	bots := make(map[int64]Bot, len(response.Content))
	for _, bot := range response.Content {
		bots[bot.ID] = bot
	}
	return bots, nil
}

// Find implements finder.Finder.
func (c *Client) Find(ctx context.Context, q finder.Query) ([]finder.Entry, error) {
	packages, bots, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	latest := latestEpisode(packages)

	entries := make([]finder.Entry, 0, len(packages))
	for _, p := range packages {
		if !q.Episode.Matches(p.EpisodeNumber, latest) {
			continue
		}
		entries = append(entries, toEntry(p, bots))
	}

	c.logger.Debug().
		Int("packages", len(packages)).
		Int("bots", len(bots)).
		Int("latestEpisode", latest).
		Int("entries", len(entries)).
		Msg("Find completed")

	return entries, nil
}

// fetch loads the packages and the bot directory. Either failure aborts
// the whole fetch.
func (c *Client) fetch(ctx context.Context, q finder.Query) ([]Package, map[int64]Bot, error) {
	if !c.concurrentFetch {
		packages, err := c.SearchPackages(ctx, q)
		if err != nil {
			return nil, nil, err
		}
		bots, err := c.Bots(ctx)
		if err != nil {
			return nil, nil, err
		}
		return packages, bots, nil
	}

	var packages []Package
	var bots map[int64]Bot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		packages, err = c.SearchPackages(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		bots, err = c.Bots(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return packages, bots, nil
}

// latestEpisode returns the episode of the most recently modified package,
// or 1 when there are no packages. The last package wins on ties.
func latestEpisode(packages []Package) int {
	if len(packages) == 0 {
		return 1
	}
	newest := packages[0]
	for _, p := range packages[1:] {
		if p.LastModified >= newest.LastModified {
			newest = p
		}
	}
	return newest.EpisodeNumber
}

func toEntry(p Package, bots map[int64]Bot) finder.Entry {
	botName := finder.UnknownBot
	if bot, ok := bots[p.BotID]; ok {
		botName = bot.Name
	}
	return finder.Entry{
		PackageNumber: p.Number,
		BotID:         p.BotID,
		BotName:       botName,
		Name:          p.Name,
		Size:          p.Size,
	}
}

// doRequest performs a GET request and decodes the JSON response body.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return finder.NewTransportError(APIName, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return finder.NewTransportError(APIName, err)
	}
	defer resp.Body.Close()

	// The API reports failures in the envelope, whatever the HTTP status.
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(result); err != nil {
		if resp.StatusCode != http.StatusOK {
			c.logger.Error().Int("status", resp.StatusCode).Str("url", endpoint).Msg("Unexpected HTTP status")
			return finder.NewTransportError(APIName, fmt.Errorf("unexpected status: %s", resp.Status))
		}
		return finder.NewTransportError(APIName, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}
