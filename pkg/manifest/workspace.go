package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/dargo/pkg/errors"
)

// Members loads every package of the workspace rooted at m: m itself when it
// declares a package, followed by each [workspace] members match that is not
// excluded. Without a [workspace] table the result is just m.
func (m *Manifest) Members() ([]*Manifest, error) {
	var out []*Manifest
	if !m.IsVirtual() {
		out = append(out, m)
	}
	ws := m.file.Workspace
	if ws == nil {
		return out, nil
	}

	root := filepath.Dir(m.Path)
	excluded := make(map[string]bool, len(ws.Exclude))
	for _, e := range ws.Exclude {
		excluded[filepath.Clean(filepath.Join(root, e))] = true
	}
	seen := map[string]bool{filepath.Clean(m.Path): true}

	for _, pattern := range ws.Members {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "workspace member pattern %q", pattern)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "workspace member %s does not exist", pattern)
		}
		for _, dir := range matches {
			if excluded[filepath.Clean(dir)] {
				continue
			}
			path := filepath.Join(dir, FileName)
			if seen[path] {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				if hasMeta(pattern) {
					continue
				}
				return nil, errors.New(errors.ErrCodeInvalidManifest, "workspace member %s has no %s", pattern, FileName)
			}
			seen[path] = true
			member, err := Load(path)
			if err != nil {
				return nil, err
			}
			out = append(out, member)
		}
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[\`)
}
