package registry

import (
	"context"
	"sync"
)

// Memory is an in-process [Index]. It records every lookup, which makes it
// convenient for asserting on query patterns in tests.
type Memory struct {
	id string

	mu        sync.Mutex
	releases  map[string][]Release
	failures  map[string]error
	queries   []string
	refreshes int
}

// NewMemory creates an empty index identified by id.
func NewMemory(id string) *Memory {
	return &Memory{
		id:       id,
		releases: make(map[string][]Release),
		failures: make(map[string]error),
	}
}

// Publish adds releases of name.
func (m *Memory) Publish(name string, versions ...string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range versions {
		m.releases[name] = append(m.releases[name], Release{Name: name, Version: v})
	}
	return m
}

// Yank marks an already published release as yanked.
func (m *Memory) Yank(name, version string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.releases[name] {
		if r.Version == version {
			m.releases[name][i].Yanked = true
		}
	}
	return m
}

// Fail makes lookups of name return err.
func (m *Memory) Fail(name string, err error) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[name] = err
	return m
}

// ID implements [Index].
func (m *Memory) ID() string { return m.id }

// Releases implements [Index].
func (m *Memory) Releases(ctx context.Context, name string) ([]Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, name)
	if err := m.failures[name]; err != nil {
		return nil, err
	}
	return append([]Release(nil), m.releases[name]...), nil
}

// Refresh implements [Index] by counting calls.
func (m *Memory) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	return nil
}

// Queries returns the names looked up so far, in order.
func (m *Memory) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Refreshes returns how many times Refresh was called.
func (m *Memory) Refreshes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

var _ Index = (*Memory)(nil)
