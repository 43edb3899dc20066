package registry

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/requirement"
)

func mustReq(t *testing.T, text string) *requirement.Requirement {
	t.Helper()
	r, err := requirement.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return r
}

func TestBestVersion(t *testing.T) {
	idx := NewMemory("test").
		Publish("foo", "0.9.0", "1.0.0", "1.2.0", "1.3.0-beta.1", "2.0.0").
		Yank("foo", "2.0.0")

	tests := []struct {
		name string
		req  string
		pre  bool
		want string
	}{
		{"any skips yanked", "", false, "1.2.0"},
		{"any with prerelease", "", true, "1.3.0-beta.1"},
		{"caret", "1.0", false, "1.2.0"},
		{"exact", "=1.0.0", false, "1.0.0"},
		{"upper bound", "<1.0.0", false, "0.9.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := BestVersion(context.Background(), idx, "foo", mustReq(t, tt.req), tt.pre)
			if err != nil {
				t.Fatalf("BestVersion() error: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("BestVersion() = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestBestVersion_NilRequirementMeansAny(t *testing.T) {
	idx := NewMemory("test").Publish("foo", "0.1.0", "0.2.0")
	v, err := BestVersion(context.Background(), idx, "foo", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "0.2.0" {
		t.Errorf("BestVersion() = %s, want 0.2.0", v)
	}
}

func TestBestVersion_Errors(t *testing.T) {
	idx := NewMemory("test").
		Publish("pre-only", "1.0.0-alpha.1").
		Fail("broken", stderrors.New("connection reset"))

	tests := []struct {
		name string
		pkg  string
		req  string
		code errors.Code
	}{
		{"unknown package", "missing", "", errors.ErrCodePackageNotFound},
		{"only prereleases", "pre-only", "", errors.ErrCodeNoVersions},
		{"nothing matches", "pre-only", ">=2", errors.ErrCodeNoVersions},
		{"registry failure", "broken", "", errors.ErrCodeRegistry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BestVersion(context.Background(), idx, tt.pkg, mustReq(t, tt.req), false)
			if !errors.Is(err, tt.code) {
				t.Errorf("BestVersion() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestResolve_ExactName(t *testing.T) {
	idx := NewMemory("test").Publish("serde_json", "1.0.100")

	m, err := Resolve(context.Background(), idx, "serde_json", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "serde_json" || m.Version.String() != "1.0.100" {
		t.Errorf("Resolve() = %s %s", m.Name, m.Version)
	}
	if m.Fuzzy("serde_json") {
		t.Error("exact match reported as fuzzy")
	}
	if q := idx.Queries(); len(q) != 1 {
		t.Errorf("exact hit should need one query, got %v", q)
	}
}

func TestResolve_SeparatorVariant(t *testing.T) {
	idx := NewMemory("test").Publish("serde_json", "1.0.100")

	m, err := Resolve(context.Background(), idx, "serde-json", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "serde_json" {
		t.Errorf("Resolve() name = %s, want serde_json", m.Name)
	}
	if !m.Fuzzy("serde-json") {
		t.Error("variant match should be fuzzy")
	}
}

func TestResolve_MixedSeparators(t *testing.T) {
	idx := NewMemory("test").Publish("a-b_c-d", "0.1.0")

	m, err := Resolve(context.Background(), idx, "a_b_c_d", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "a-b_c-d" {
		t.Errorf("Resolve() name = %s, want a-b_c-d", m.Name)
	}
}

func TestResolve_VariantOrderIsDeterministic(t *testing.T) {
	// Both alternative spellings exist; ascending bitmask order tries "a_b-c"
	// (mask 0b10) after "a-b_c" (mask 0b01).
	idx := NewMemory("test").Publish("a-b_c", "1.0.0").Publish("a_b-c", "2.0.0")

	m, err := Resolve(context.Background(), idx, "a-b-c", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "a-b_c" {
		t.Errorf("Resolve() name = %s, want a-b_c", m.Name)
	}
}

func TestResolve_NoVariantMatches(t *testing.T) {
	idx := NewMemory("test")

	_, err := Resolve(context.Background(), idx, "no-such-crate", nil, false)
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Fatalf("Resolve() error = %v, want PACKAGE_NOT_FOUND", err)
	}
	// exact name plus the 3 other spellings of two separators
	if q := idx.Queries(); len(q) != 4 {
		t.Errorf("queries = %v, want 4", q)
	}
}

func TestResolve_NoSeparators(t *testing.T) {
	idx := NewMemory("test")

	_, err := Resolve(context.Background(), idx, "missing", nil, false)
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Fatalf("Resolve() error = %v", err)
	}
	if q := idx.Queries(); len(q) != 1 {
		t.Errorf("queries = %v, want just the exact name", q)
	}
}

func TestResolve_TooManyVariants(t *testing.T) {
	idx := NewMemory("test")
	name := "a" + strings.Repeat("-a", MaxSeparators+1)

	_, err := Resolve(context.Background(), idx, name, nil, false)
	if !errors.Is(err, errors.ErrCodeTooManyVariants) {
		t.Fatalf("Resolve() error = %v, want TOO_MANY_VARIANTS", err)
	}
	if q := idx.Queries(); len(q) != 1 {
		t.Errorf("only the exact name may be queried, got %d queries", len(q))
	}
}

func TestResolve_RegistryErrorAborts(t *testing.T) {
	idx := NewMemory("test").Fail("a_b", stderrors.New("boom"))

	_, err := Resolve(context.Background(), idx, "a-b", nil, false)
	if !errors.Is(err, errors.ErrCodeRegistry) {
		t.Fatalf("Resolve() error = %v, want REGISTRY_ERROR", err)
	}
}

func TestResolve_RequirementAppliesToVariants(t *testing.T) {
	idx := NewMemory("test").Publish("foo_bar", "0.1.0", "0.2.0")

	m, err := Resolve(context.Background(), idx, "foo-bar", mustReq(t, "0.1"), false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Version.String() != "0.1.0" {
		t.Errorf("Resolve() version = %s, want 0.1.0", m.Version)
	}
}

func TestVariants(t *testing.T) {
	got := Variants("a-b_c")
	want := []string{"a_b_c", "a-b_c", "a_b-c", "a-b-c"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Variants() = %v, want %v", got, want)
	}

	if got := Variants("plain"); len(got) != 1 || got[0] != "plain" {
		t.Errorf("Variants(plain) = %v", got)
	}
	if got := Variants(strings.Repeat("a-", MaxSeparators+1)); got != nil {
		t.Errorf("Variants() over the bound should be nil, got %d", len(got))
	}
}

func TestUpdater(t *testing.T) {
	a := NewMemory("crates-io")
	b := NewMemory("crates-io")
	c := NewMemory("other")
	u := NewUpdater()

	for _, idx := range []*Memory{a, a, b, c} {
		if err := u.Update(context.Background(), idx); err != nil {
			t.Fatal(err)
		}
	}

	if a.Refreshes() != 1 {
		t.Errorf("a refreshed %d times, want 1", a.Refreshes())
	}
	if b.Refreshes() != 0 {
		t.Errorf("b shares a's ID and must not be refreshed, got %d", b.Refreshes())
	}
	if c.Refreshes() != 1 {
		t.Errorf("c refreshed %d times, want 1", c.Refreshes())
	}
}
