package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dargo/pkg/errors"
)

const sample = `[package]
name = "demo"
version = "0.1.0"

[dependencies]
serde = "1.0.100" # pinned
tokio = { version = "1.28", features = ["full"] }
log.version = "0.4"
local = { path = "../local" }
json = { package = "serde_json", version = "1" }
internal = { version = "2", registry = "corp" }
shared = { workspace = true }

[dependencies.regex]
version = "1.5"
optional = true

[dev_dependencies]
tempfile = "3"

[target.'cfg(unix)'.dependencies]
libc = "0.2"
`

func mustParse(t *testing.T, text string) *Manifest {
	t.Helper()
	m, err := Parse("Cargo.toml", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestLocateSlotText(t *testing.T) {
	m := mustParse(t, sample)
	tests := []struct {
		slot Slot
		want string
		ok   bool
	}{
		{Slot{Kind: Normal, Name: "serde"}, "1.0.100", true},
		{Slot{Kind: Normal, Name: "tokio"}, "1.28", true},
		{Slot{Kind: Normal, Name: "log"}, "0.4", true},
		{Slot{Kind: Normal, Name: "regex"}, "1.5", true},
		{Slot{Kind: Normal, Name: "local"}, "", false},
		{Slot{Kind: Development, Name: "tempfile"}, "3", true},
		{Slot{Kind: Build, Name: "cc"}, "", false},
		{Slot{Kind: Normal, Platform: "cfg(unix)", Name: "libc"}, "0.2", true},
		{Slot{Kind: Normal, Name: "libc"}, "", false},
		{Slot{Kind: Development, Name: "serde"}, "", false},
	}
	for _, tt := range tests {
		got, ok := m.LocateSlotText(tt.slot)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LocateSlotText(%+v) = %q, %v; want %q, %v", tt.slot, got, ok, tt.want, tt.ok)
		}
	}
	if !m.Has(Slot{Kind: Normal, Name: "local"}) {
		t.Error("Has(local) = false for an entry without version")
	}
}

func TestWriteSlotTextPreservesEverythingElse(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		text string
		old  string
		new  string
	}{
		{"bare string", Slot{Kind: Normal, Name: "serde"}, "1.0.200",
			`serde = "1.0.100" # pinned`, `serde = "1.0.200" # pinned`},
		{"inline table", Slot{Kind: Normal, Name: "tokio"}, "1.35",
			`tokio = { version = "1.28", features = ["full"] }`, `tokio = { version = "1.35", features = ["full"] }`},
		{"dotted", Slot{Kind: Normal, Name: "log"}, "0.4.20",
			`log.version = "0.4"`, `log.version = "0.4.20"`},
		{"sub-table", Slot{Kind: Normal, Name: "regex"}, "1.10",
			"version = \"1.5\"\noptional", "version = \"1.10\"\noptional"},
		{"alias section", Slot{Kind: Development, Name: "tempfile"}, "3.8",
			`tempfile = "3"`, `tempfile = "3.8"`},
		{"target", Slot{Kind: Normal, Platform: "cfg(unix)", Name: "libc"}, "0.2.150",
			`libc = "0.2"`, `libc = "0.2.150"`},
		{"table without version", Slot{Kind: Normal, Name: "local"}, "0.1",
			`local = { path = "../local" }`, `local = { path = "../local", version = "0.1" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, sample)
			if err := m.WriteSlotText(tt.slot, tt.text); err != nil {
				t.Fatalf("WriteSlotText: %v", err)
			}
			want := strings.Replace(sample, tt.old, tt.new, 1)
			if m.String() != want {
				t.Errorf("document mismatch:\n%s", m.String())
			}
			if got, _ := m.LocateSlotText(tt.slot); got != tt.text {
				t.Errorf("LocateSlotText after write = %q", got)
			}
		})
	}
}

func TestWriteSlotTextCreates(t *testing.T) {
	tests := []struct {
		name string
		src  string
		slot Slot
		want string
	}{
		{
			name: "into existing section",
			src:  "[package]\nname = \"x\"\n\n[dependencies]\nserde = \"1\"\n",
			slot: Slot{Kind: Normal, Name: "bar"},
			want: "[package]\nname = \"x\"\n\n[dependencies]\nserde = \"1\"\nbar = \"0.9.0\"\n",
		},
		{
			name: "into inline section",
			src:  "dependencies = { foo = \"1.0.0\" }\n",
			slot: Slot{Kind: Normal, Name: "bar"},
			want: "dependencies = { foo = \"1.0.0\", bar = \"0.9.0\" }\n",
		},
		{
			name: "new section",
			src:  "[package]\nname = \"x\"\n",
			slot: Slot{Kind: Build, Name: "bar"},
			want: "[package]\nname = \"x\"\n\n[build-dependencies]\nbar = \"0.9.0\"\n",
		},
		{
			name: "new target section",
			src:  "[package]\nname = \"x\"\n",
			slot: Slot{Kind: Development, Platform: "x86_64-pc-windows-gnu", Name: "bar"},
			want: "[package]\nname = \"x\"\n\n[target.x86_64-pc-windows-gnu.dev-dependencies]\nbar = \"0.9.0\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.src)
			if err := m.WriteSlotText(tt.slot, "0.9.0"); err != nil {
				t.Fatalf("WriteSlotText: %v", err)
			}
			if got := m.String(); got != tt.want {
				t.Errorf("document mismatch:\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestDeleteSlot(t *testing.T) {
	m := mustParse(t, sample)
	removed, err := m.DeleteSlot(Slot{Kind: Normal, Name: "serde"})
	if err != nil || !removed {
		t.Fatalf("DeleteSlot = %v, %v", removed, err)
	}
	want := strings.Replace(sample, "serde = \"1.0.100\" # pinned\n", "", 1)
	if m.String() != want {
		t.Errorf("document mismatch:\n%s", m.String())
	}

	removed, err = m.DeleteSlot(Slot{Kind: Build, Name: "serde"})
	if err != nil || removed {
		t.Errorf("DeleteSlot(missing) = %v, %v", removed, err)
	}

	if _, err := m.DeleteSlot(Slot{Kind: Normal, Name: "regex"}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(m.String(), "regex") || !strings.Contains(m.String(), "[dev_dependencies]") {
		t.Errorf("sub-table removal touched the wrong lines:\n%s", m.String())
	}
}

func TestDeleteSlotKeepsCommentAboveNextTable(t *testing.T) {
	m := mustParse(t, "[dependencies.foo]\nversion = \"1.0.0\"\n\n# about bar\n[dependencies]\nbar = \"1\"\n")
	removed, err := m.DeleteSlot(Slot{Kind: Normal, Name: "foo"})
	if err != nil || !removed {
		t.Fatalf("DeleteSlot = %v, %v", removed, err)
	}
	if want := "# about bar\n[dependencies]\nbar = \"1\"\n"; m.String() != want {
		t.Errorf("document mismatch:\n got %q\nwant %q", m.String(), want)
	}
}

func TestDependencies(t *testing.T) {
	m := mustParse(t, sample)
	got := m.Dependencies()

	want := []Dependency{
		{Slot: Slot{Kind: Normal, Name: "serde"}, Package: "serde", Requirement: "1.0.100"},
		{Slot: Slot{Kind: Normal, Name: "tokio"}, Package: "tokio", Requirement: "1.28"},
		{Slot: Slot{Kind: Normal, Name: "log"}, Package: "log", Requirement: "0.4"},
		{Slot: Slot{Kind: Normal, Name: "local"}, Package: "local", Source: SourcePath},
		{Slot: Slot{Kind: Normal, Name: "json"}, Package: "serde_json", Requirement: "1"},
		{Slot: Slot{Kind: Normal, Name: "internal"}, Package: "internal", Requirement: "2", Source: SourceAltRegistry, Registry: "corp"},
		{Slot: Slot{Kind: Normal, Name: "shared"}, Package: "shared", Source: SourceWorkspace},
		{Slot: Slot{Kind: Normal, Name: "regex"}, Package: "regex", Requirement: "1.5"},
		{Slot: Slot{Kind: Development, Name: "tempfile"}, Package: "tempfile", Requirement: "3"},
		{Slot: Slot{Kind: Normal, Platform: "cfg(unix)", Name: "libc"}, Package: "libc", Requirement: "0.2"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d dependencies, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dependency %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("Cargo.toml", "[dependencies\nserde = 1")
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse(malformed) error = %v, want INVALID_MANIFEST", err)
	}
	_, err = Parse("Cargo.toml", "[dependencies]\nserde = \"1\"\nserde = \"2\"\n")
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse(duplicate key) error = %v, want INVALID_MANIFEST", err)
	}
}

func TestRoundTripUnchanged(t *testing.T) {
	m := mustParse(t, sample)
	if m.String() != sample || m.Changed() {
		t.Error("unmodified manifest does not round trip")
	}
}

func TestResolvePathAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, arg := range []string{dir, path} {
		got, err := ResolvePath(arg)
		if err != nil {
			t.Fatalf("ResolvePath(%s): %v", arg, err)
		}
		if got != path {
			t.Errorf("ResolvePath(%s) = %s, want %s", arg, got, path)
		}
	}

	if _, err := ResolvePath(filepath.Join(dir, "missing")); !errors.Is(err, errors.ErrCodeManifestNotFound) {
		t.Errorf("ResolvePath(missing) error = %v", err)
	}
	if _, err := ResolvePath(t.TempDir()); !errors.Is(err, errors.ErrCodeManifestNotFound) {
		t.Errorf("ResolvePath(empty dir) error = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "nope.toml")); !errors.Is(err, errors.ErrCodeManifestNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "demo" || m.IsVirtual() {
		t.Errorf("Name = %q, IsVirtual = %v", m.Name(), m.IsVirtual())
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	wrote, err := m.Save()
	if err != nil || wrote {
		t.Fatalf("Save(unchanged) = %v, %v", wrote, err)
	}

	if err := m.WriteSlotText(Slot{Kind: Normal, Name: "serde"}, "1.0.200"); err != nil {
		t.Fatal(err)
	}
	wrote, err = m.Save()
	if err != nil || !wrote {
		t.Fatalf("Save = %v, %v", wrote, err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `serde = "1.0.200" # pinned`) {
		t.Errorf("saved text:\n%s", data)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	if m.Changed() {
		t.Error("Changed after Save")
	}
}

func TestMembers(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, text string) {
		t.Helper()
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("Cargo.toml", "[workspace]\nmembers = [\"crates/*\", \"tools/cli\"]\nexclude = [\"crates/old\"]\n")
	write("crates/a/Cargo.toml", "[package]\nname = \"a\"\n")
	write("crates/b/Cargo.toml", "[package]\nname = \"b\"\n")
	write("crates/old/Cargo.toml", "[package]\nname = \"old\"\n")
	write("crates/notes/README", "not a crate")
	write("tools/cli/Cargo.toml", "[package]\nname = \"cli\"\n")

	root, err := Load(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !root.IsVirtual() {
		t.Fatal("root should be virtual")
	}
	members, err := root.Members()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, m := range members {
		names = append(names, m.Name())
	}
	if got := strings.Join(names, ","); got != "a,b,cli" {
		t.Errorf("members = %s, want a,b,cli", got)
	}

	write("Cargo.toml", "[package]\nname = \"root\"\n[workspace]\nmembers = [\"missing\"]\n")
	root, err = Load(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := root.Members(); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Members(missing member) error = %v", err)
	}
}

func TestMembersSinglePackage(t *testing.T) {
	m := mustParse(t, sample)
	members, err := m.Members()
	if err != nil || len(members) != 1 || members[0] != m {
		t.Errorf("Members = %v, %v", members, err)
	}
}
