package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/dargo/pkg/cache"
	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/integrations/crates"
)

func newSparseServer(t *testing.T, files map[string]string) (*httptest.Server, *int) {
	t.Helper()
	hits := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		body, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestSparse_Releases(t *testing.T) {
	srv, _ := newSparseServer(t, map[string]string{
		"/se/rd/serde": `{"name":"serde","vers":"1.0.0","yanked":false}
{"name":"serde","vers":"1.0.1","yanked":true}
`,
	})
	idx := NewSparse(crates.NewClient(cache.NewNullCache(), srv.URL, time.Hour))

	releases, err := idx.Releases(context.Background(), "serde")
	if err != nil {
		t.Fatal(err)
	}
	if len(releases) != 2 || !releases[1].Yanked {
		t.Errorf("Releases() = %+v", releases)
	}

	missing, err := idx.Releases(context.Background(), "nope")
	if err != nil {
		t.Fatalf("missing crate should not be an error: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing crate returned %d releases", len(missing))
	}

	if idx.ID() != "sparse+"+srv.URL {
		t.Errorf("ID() = %q", idx.ID())
	}
}

func TestSparse_RefreshBypassesCacheOncePerName(t *testing.T) {
	srv, hits := newSparseServer(t, map[string]string{
		"/se/rd/serde": `{"name":"serde","vers":"1.0.0","yanked":false}` + "\n",
	})
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	idx := NewSparse(crates.NewClient(backend, srv.URL, time.Hour))
	ctx := context.Background()

	if _, err := idx.Releases(ctx, "serde"); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Releases(ctx, "serde"); err != nil {
		t.Fatal(err)
	}
	if *hits != 1 {
		t.Fatalf("cached lookups hit the server %d times, want 1", *hits)
	}

	if err := idx.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Releases(ctx, "serde"); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Releases(ctx, "serde"); err != nil {
		t.Fatal(err)
	}
	if *hits != 2 {
		t.Errorf("after refresh the server was hit %d times, want 2", *hits)
	}
}

func TestSparse_FiltersOtherNames(t *testing.T) {
	srv, _ := newSparseServer(t, map[string]string{
		"/3/a/abc": `{"name":"ABC","vers":"1.0.0"}
{"name":"other","vers":"9.0.0"}
`,
	})
	idx := NewSparse(crates.NewClient(cache.NewNullCache(), srv.URL, time.Hour))

	releases, err := idx.Releases(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(releases) != 1 || releases[0].Name != "ABC" {
		t.Errorf("Releases() = %+v", releases)
	}
}

func TestSparse_ServerErrorIsRegistryError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	idx := NewSparse(crates.NewClient(cache.NewNullCache(), srv.URL, time.Hour))

	_, err := BestVersion(context.Background(), idx, "serde", nil, false)
	if !errors.Is(err, errors.ErrCodeRegistry) {
		t.Errorf("BestVersion() error = %v, want REGISTRY_ERROR", err)
	}
}
