package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "dev", "none", "unknown"
	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"},
		},
	})
	if Version != "v0.4.0" || Commit != "abc123" || Date != "2024-01-02T03:04:05Z" {
		t.Errorf("fill = %s %s %s", Version, Commit, Date)
	}

	// ldflags win over recorded build info
	Version, Commit = "v1.0.0", "deadbeef"
	fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}})
	if Version != "v1.0.0" || Commit != "deadbeef" {
		t.Errorf("fill overwrote ldflags: %s %s", Version, Commit)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Errorf("Template() = %q", Template())
	}
}
