package manifest

import (
	"strings"

	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/tomledit"
)

// Kind is the dependency table an entry belongs to.
type Kind int

const (
	Normal Kind = iota
	Development
	Build
)

// Section returns the canonical table name for k.
func (k Kind) Section() string {
	switch k {
	case Development:
		return "dev-dependencies"
	case Build:
		return "build-dependencies"
	default:
		return "dependencies"
	}
}

func (k Kind) String() string {
	switch k {
	case Development:
		return "dev"
	case Build:
		return "build"
	default:
		return "normal"
	}
}

// sectionNames maps every accepted table name, aliases included, to its kind.
var sectionNames = map[string]Kind{
	"dependencies":       Normal,
	"dev-dependencies":   Development,
	"dev_dependencies":   Development,
	"build-dependencies": Build,
	"build_dependencies": Build,
}

func (k Kind) names() []string {
	switch k {
	case Development:
		return []string{"dev-dependencies", "dev_dependencies"}
	case Build:
		return []string{"build-dependencies", "build_dependencies"}
	default:
		return []string{"dependencies"}
	}
}

// Slot identifies where a requirement lives in a manifest.
type Slot struct {
	Kind     Kind
	Platform string // target platform, empty for the plain tables
	Name     string // key of the entry in the document
}

// Section renders the table holding s, e.g. "dev-dependencies" or
// "target.cfg(unix).dependencies".
func (s Slot) Section() string {
	if s.Platform == "" {
		return s.Kind.Section()
	}
	return "target." + s.Platform + "." + s.Kind.Section()
}

// sectionPath returns the key path of the table holding s. An existing
// alias spelling (dev_dependencies) is preferred over creating the canonical
// table next to it.
func (m *Manifest) sectionPath(s Slot) []string {
	var base []string
	if s.Platform != "" {
		base = []string{"target", s.Platform}
	}
	for _, name := range s.Kind.names() {
		p := append(append([]string(nil), base...), name)
		if m.doc.Kind(p...) != tomledit.KindNone {
			return p
		}
	}
	return append(base, s.Kind.Section())
}

func (m *Manifest) entryPath(s Slot) []string {
	return append(m.sectionPath(s), s.Name)
}

// Has reports whether the slot's entry exists, whatever its shape.
func (m *Manifest) Has(s Slot) bool {
	return m.doc.Kind(m.entryPath(s)...) != tomledit.KindNone
}

// LocateSlotText returns the requirement text of s, read from a bare string
// entry or from the version key of a table entry.
func (m *Manifest) LocateSlotText(s Slot) (string, bool) {
	path := m.entryPath(s)
	switch m.doc.Kind(path...) {
	case tomledit.KindString:
		return m.doc.GetString(path...)
	case tomledit.KindTable:
		return m.doc.GetString(append(path, "version")...)
	default:
		return "", false
	}
}

// WriteSlotText stores text as the requirement of s. Missing tables and the
// entry itself are created as needed; a table entry keeps its other keys and
// only has its version set.
func (m *Manifest) WriteSlotText(s Slot, text string) error {
	path := m.entryPath(s)
	if m.doc.Kind(path...) == tomledit.KindTable {
		path = append(path, "version")
	}
	if err := m.doc.SetString(text, path...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "write %s in %s", s.Name, s.Section())
	}
	return nil
}

// DeleteSlot removes the entry of s, leaving its table in place.
// It reports whether there was anything to remove.
func (m *Manifest) DeleteSlot(s Slot) (bool, error) {
	removed, err := m.doc.Delete(m.entryPath(s)...)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidManifest, err, "remove %s from %s", s.Name, s.Section())
	}
	return removed, nil
}

// ParseSection maps a table name such as "dev-dependencies" to its kind.
func ParseSection(name string) (Kind, bool) {
	k, ok := sectionNames[strings.TrimSpace(name)]
	return k, ok
}
