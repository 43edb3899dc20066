package crates

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/dargo/pkg/cache"
	"github.com/matzehuels/dargo/pkg/integrations"
)

// DefaultIndexURL is the crates.io sparse index.
const DefaultIndexURL = "https://index.crates.io"

// Release is one line of a sparse index file: a single published version.
type Release struct {
	Name    string `json:"name"`   // Crate name as published
	Version string `json:"vers"`   // Version string (e.g., "1.0.193")
	Yanked  bool   `json:"yanked"` // Yanked releases are not selectable
}

// Client reads crate metadata from a Cargo sparse registry index.
//
// Index files are cached through the embedded [integrations.Client]; a fetch
// with refresh set bypasses and overwrites the cached copy.
type Client struct {
	*integrations.Client
	indexURL string
}

// NewClient creates a sparse index client.
//
// Parameters:
//   - backend: Cache backend for index files (use cache.NewNullCache() for no caching)
//   - indexURL: Index base URL; "" selects [DefaultIndexURL]
//   - cacheTTL: How long fetched index files are considered fresh
func NewClient(backend cache.Cache, indexURL string, cacheTTL time.Duration) *Client {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	headers := map[string]string{
		"User-Agent": "dargo/1.0 (https://github.com/matzehuels/dargo)",
	}
	return &Client{
		Client:   integrations.NewClient(backend, "index:", cacheTTL, headers),
		indexURL: strings.TrimSuffix(indexURL, "/"),
	}
}

// IndexURL returns the base URL of the index this client reads.
func (c *Client) IndexURL() string { return c.indexURL }

// FetchIndex returns every release of crate listed in the index, in index
// order (oldest first), including yanked ones.
//
// Returns:
//   - the releases on success
//   - [integrations.ErrNotFound] if the crate has no index file
//   - [integrations.ErrNetwork] for HTTP failures
//   - an error for undecodable index lines
func (c *Client) FetchIndex(ctx context.Context, crate string, refresh bool) ([]Release, error) {
	var releases []Release
	err := c.Cached(ctx, strings.ToLower(crate), refresh, &releases, func() error {
		return c.fetch(ctx, crate, &releases)
	})
	if err != nil {
		return nil, err
	}
	return releases, nil
}

func (c *Client) fetch(ctx context.Context, crate string, releases *[]Release) error {
	text, err := c.GetText(ctx, fmt.Sprintf("%s/%s", c.indexURL, IndexPath(crate)))
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}
	parsed, err := parseIndex(text)
	if err != nil {
		return fmt.Errorf("crate %s: %w", crate, err)
	}
	*releases = parsed
	return nil
}

func parseIndex(text string) ([]Release, error) {
	var out []Release
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; sc.Scan(); line++ {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var r Release
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("index line %d: %w", line, err)
		}
		out = append(out, r)
	}
	return out, sc.Err()
}

// IndexPath returns the path of crate's file inside a Cargo index:
// "1/a", "2/ab", "3/a/abc", or "ab/cd/abcd..." for longer names.
// Paths are always lowercase.
func IndexPath(crate string) string {
	name := strings.ToLower(crate)
	switch len(name) {
	case 0:
		return ""
	case 1:
		return "1/" + name
	case 2:
		return "2/" + name
	case 3:
		return "3/" + name[:1] + "/" + name
	default:
		return name[:2] + "/" + name[2:4] + "/" + name
	}
}
