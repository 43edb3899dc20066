package registry

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/matzehuels/dargo/pkg/integrations"
	"github.com/matzehuels/dargo/pkg/integrations/crates"
)

// Release is one published version of a package.
type Release struct {
	Name    string // Name as published
	Version string // Version text
	Yanked  bool   // Yanked releases are never selected
}

// Index lists the releases published under a package name.
type Index interface {
	// ID identifies the backing source. Indexes with equal IDs share one
	// local copy and are refreshed together.
	ID() string
	// Releases returns every release of name. A name that is not published
	// yields an empty slice and a nil error; any other failure is an error.
	Releases(ctx context.Context, name string) ([]Release, error)
	// Refresh brings the local copy of the index up to date.
	Refresh(ctx context.Context) error
}

// Sparse is an [Index] backed by a Cargo sparse index over HTTP.
//
// Before Refresh, index files come from the on-disk cache when present. After
// Refresh, the first lookup of each name in this process re-downloads its file.
type Sparse struct {
	client *crates.Client

	mu        sync.Mutex
	refreshed bool
	fresh     map[string]bool
}

// NewSparse wraps a sparse index client.
func NewSparse(client *crates.Client) *Sparse {
	return &Sparse{client: client, fresh: make(map[string]bool)}
}

// ID returns the index URL.
func (s *Sparse) ID() string { return "sparse+" + s.client.IndexURL() }

// Releases implements [Index].
func (s *Sparse) Releases(ctx context.Context, name string) ([]Release, error) {
	key := strings.ToLower(name)

	s.mu.Lock()
	refresh := s.refreshed && !s.fresh[key]
	s.mu.Unlock()

	found, err := s.client.FetchIndex(ctx, name, refresh)
	if errors.Is(err, integrations.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if refresh {
		s.mu.Lock()
		s.fresh[key] = true
		s.mu.Unlock()
	}

	// The index path folds case; keep only records for this crate.
	out := make([]Release, 0, len(found))
	for _, r := range found {
		if !strings.EqualFold(r.Name, name) {
			continue
		}
		out = append(out, Release{Name: r.Name, Version: r.Version, Yanked: r.Yanked})
	}
	return out, nil
}

// Refresh marks every cached index file stale for the rest of the process.
// Sparse indexes have no bulk download, so nothing is fetched here.
func (s *Sparse) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshed = true
	return nil
}

var _ Index = (*Sparse)(nil)
