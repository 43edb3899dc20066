package manifest

import "sort"

// Source is where a dependency is fetched from.
type Source int

const (
	SourceRegistry Source = iota
	SourcePath
	SourceGit
	SourceWorkspace
	SourceAltRegistry // a registry other than the default index
)

func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceGit:
		return "git"
	case SourceWorkspace:
		return "workspace"
	case SourceAltRegistry:
		return "alternative registry"
	default:
		return "registry"
	}
}

// Dependency is one entry of a dependency table.
type Dependency struct {
	Slot
	Package     string // crate name on the registry; differs from Name when renamed
	Requirement string // version requirement text, empty when absent
	Source      Source
	Registry    string // name of the alternative registry, if any
}

// Dependencies lists every entry of the dependency tables, including the
// per-target ones, in document order. It reflects the text as loaded, not
// later edits.
func (m *Manifest) Dependencies() []Dependency {
	var out []Dependency
	seen := make(map[Slot]bool)
	for _, key := range m.meta.Keys() {
		slot, ok := slotFromKey(key)
		if !ok || seen[slot] {
			continue
		}
		seen[slot] = true
		out = append(out, m.describe(slot))
	}
	for _, slot := range m.decodedSlots() {
		if !seen[slot] {
			seen[slot] = true
			out = append(out, m.describe(slot))
		}
	}
	return out
}

// decodedSlots lists the slots of the decoded tables in sorted order. It
// catches entries the key list does not report on its own.
func (m *Manifest) decodedSlots() []Slot {
	var slots []Slot
	collect := func(platform string, tables map[string]any) {
		for _, section := range sortedKeys(tables) {
			kind, ok := sectionNames[section]
			if !ok {
				continue
			}
			entries, _ := tables[section].(map[string]any)
			for _, name := range sortedKeys(entries) {
				slots = append(slots, Slot{Kind: kind, Platform: platform, Name: name})
			}
		}
	}
	collect("", m.raw)
	targets, _ := m.raw["target"].(map[string]any)
	for _, platform := range sortedKeys(targets) {
		tables, _ := targets[platform].(map[string]any)
		collect(platform, tables)
	}
	return slots
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// slotFromKey recognizes keys at or below a dependency entry:
// [section name ...] and [target platform section name ...].
func slotFromKey(key []string) (Slot, bool) {
	if len(key) >= 2 {
		if kind, ok := sectionNames[key[0]]; ok {
			return Slot{Kind: kind, Name: key[1]}, true
		}
	}
	if len(key) >= 4 && key[0] == "target" {
		if kind, ok := sectionNames[key[2]]; ok {
			return Slot{Kind: kind, Platform: key[1], Name: key[3]}, true
		}
	}
	return Slot{}, false
}

func (m *Manifest) describe(slot Slot) Dependency {
	dep := Dependency{Slot: slot, Package: slot.Name}
	switch v := m.lookup(slot).(type) {
	case string:
		dep.Requirement = v
	case map[string]any:
		dep.Requirement, _ = v["version"].(string)
		if pkg, ok := v["package"].(string); ok && pkg != "" {
			dep.Package = pkg
		}
		switch {
		case v["workspace"] == true:
			dep.Source = SourceWorkspace
		case v["path"] != nil:
			dep.Source = SourcePath
		case v["git"] != nil:
			dep.Source = SourceGit
		case v["registry"] != nil || v["registry-index"] != nil:
			dep.Source = SourceAltRegistry
			dep.Registry, _ = v["registry"].(string)
			if dep.Registry == "" {
				dep.Registry, _ = v["registry-index"].(string)
			}
		}
	}
	return dep
}

// lookup finds the decoded value of a slot, trying each section spelling.
func (m *Manifest) lookup(slot Slot) any {
	root := m.raw
	if slot.Platform != "" {
		targets, _ := m.raw["target"].(map[string]any)
		root, _ = targets[slot.Platform].(map[string]any)
	}
	for _, name := range slot.Kind.names() {
		section, _ := root[name].(map[string]any)
		if v, ok := section[slot.Name]; ok {
			return v
		}
	}
	return nil
}
