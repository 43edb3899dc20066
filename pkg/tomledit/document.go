package tomledit

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies what a key path names in a document.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindTable
	KindArray
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindTable:
		return "table"
	case KindArray:
		return "array"
	case KindOther:
		return "value"
	default:
		return "none"
	}
}

// Document is a parsed TOML text that can be edited in place.
type Document struct {
	src    string
	items  []item
	tables []table
}

// Parse indexes src. The text is kept verbatim.
func Parse(src string) (*Document, error) {
	items, tables, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Document{src: src, items: items, tables: tables}, nil
}

// String returns the current text of the document.
func (d *Document) String() string { return d.src }

// Kind reports what path names. Tables made only of dotted keys or implied
// by deeper headers count as tables.
func (d *Document) Kind(path ...string) Kind {
	if i := d.find(path); i >= 0 {
		switch d.items[i].kind {
		case valueString:
			return KindString
		case valueInline:
			return KindTable
		case valueArray:
			return KindArray
		default:
			return KindOther
		}
	}
	if len(path) == 0 || d.findTable(path) >= 0 {
		return KindTable
	}
	for _, t := range d.tables {
		if len(t.path) > len(path) && hasPrefix(t.path, path) {
			return KindTable
		}
	}
	for _, it := range d.items {
		if len(it.path) > len(path) && hasPrefix(it.path, path) {
			return KindTable
		}
	}
	return KindNone
}

// GetString returns the decoded string at path.
func (d *Document) GetString(path ...string) (string, bool) {
	i := d.find(path)
	if i < 0 || d.items[i].kind != valueString {
		return "", false
	}
	return d.items[i].value, true
}

// SetString stores value at path as a string. An existing non-table value
// has only its value bytes replaced; a missing key is inserted following the
// package-level insertion rules.
func (d *Document) SetString(value string, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("tomledit: empty key path")
	}
	if i := d.find(path); i >= 0 {
		it := d.items[i]
		if it.kind == valueInline {
			return fmt.Errorf("tomledit: %s is a table", formatKey(path))
		}
		return d.splice(it.valStart, it.valEnd, quote(value, it.literal && it.kind == valueString))
	}
	if d.Kind(path...) != KindNone {
		return fmt.Errorf("tomledit: %s is a table", formatKey(path))
	}

	container, key := path[:len(path)-1], path[len(path)-1]
	for q := len(container); q >= 0; q-- {
		kind, idx := d.container(container[:q])
		switch kind {
		case containerScalar:
			return fmt.Errorf("tomledit: %s is not a table", formatKey(container[:q]))
		case containerInline:
			return d.insertMember(idx, path[q:], value)
		case containerHeader:
			if q == len(container) {
				return d.insertInTable(idx, []string{key}, value)
			}
			return d.appendTable(container, key, value)
		case containerDotted:
			base := d.tablePath(d.items[idx].table)
			return d.insertAfter(idx, path[len(base):], value)
		case containerRoot:
			if len(container) == 0 {
				return d.insertInTable(-1, []string{key}, value)
			}
			return d.appendTable(container, key, value)
		}
	}
	return d.appendTable(container, key, value)
}

// Delete removes the value or table at path, including sub-tables and
// dotted keys beneath it. It reports whether anything was removed.
func (d *Document) Delete(path ...string) (bool, error) {
	if len(path) == 0 {
		return false, fmt.Errorf("tomledit: empty key path")
	}
	var spans [][2]int
	if i := d.find(path); i >= 0 {
		spans = append(spans, d.itemSpan(i))
	} else {
		for ti, t := range d.tables {
			if hasPrefix(t.path, path) {
				spans = append(spans, d.tableSpan(ti))
			}
		}
		for _, it := range d.items {
			if it.parent < 0 && len(it.path) > len(path) && hasPrefix(it.path, path) &&
				len(d.tablePath(it.table)) < len(path) {
				spans = append(spans, [2]int{it.lineStart, it.end})
			}
		}
	}
	if len(spans) == 0 {
		return false, nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i][0] > spans[j][0] })
	src := d.src
	lowest := len(src) + 1
	for _, s := range spans {
		if s[1] > lowest {
			s[1] = lowest
		}
		if s[0] >= s[1] {
			continue
		}
		src = src[:s[0]] + src[s[1]:]
		lowest = s[0]
	}
	return true, d.reset(src)
}

type containerKind int

const (
	containerNone containerKind = iota
	containerRoot
	containerScalar
	containerInline
	containerHeader
	containerDotted
	containerImplicit
)

// container classifies path as a place new keys could go. For dotted
// containers idx is the last pair defining it.
func (d *Document) container(path []string) (containerKind, int) {
	if len(path) == 0 {
		return containerRoot, -1
	}
	if i := d.find(path); i >= 0 {
		if d.items[i].kind == valueInline {
			return containerInline, i
		}
		return containerScalar, i
	}
	if ti := d.findTable(path); ti >= 0 {
		return containerHeader, ti
	}
	last := -1
	for i, it := range d.items {
		if it.parent < 0 && len(it.path) > len(path) && hasPrefix(it.path, path) &&
			len(d.tablePath(it.table)) < len(path) {
			last = i
		}
	}
	if last >= 0 {
		return containerDotted, last
	}
	for _, t := range d.tables {
		if len(t.path) > len(path) && hasPrefix(t.path, path) {
			return containerImplicit, -1
		}
	}
	return containerNone, -1
}

func (d *Document) insertMember(owner int, keys []string, value string) error {
	it := d.items[owner]
	member := formatKey(keys) + " = " + quote(value, false)
	if n := len(it.members); n > 0 {
		last := d.items[it.members[n-1]]
		return d.splice(last.valEnd, last.valEnd, ", "+member)
	}
	return d.splice(it.valStart+1, it.closeBrace, " "+member+" ")
}

// insertInTable adds a line after the last pair of table ti (-1 is the root).
func (d *Document) insertInTable(ti int, keys []string, value string) error {
	last := -1
	for i, it := range d.items {
		if it.parent < 0 && it.table == ti {
			last = i
		}
	}
	if last >= 0 {
		return d.insertAfter(last, keys, value)
	}
	pos := len(d.src)
	if ti >= 0 {
		pos = d.tables[ti].headerEnd
	} else if len(d.tables) > 0 {
		pos = d.tables[0].lineStart
	}
	return d.insertLine(pos, "", keys, value)
}

func (d *Document) insertAfter(i int, keys []string, value string) error {
	it := d.items[i]
	indent := d.src[it.lineStart:it.keyStart]
	return d.insertLine(it.end, indent, keys, value)
}

func (d *Document) insertLine(pos int, indent string, keys []string, value string) error {
	nl := d.newline()
	line := indent + formatKey(keys) + " = " + quote(value, false) + nl
	if pos > 0 && d.src[pos-1] != '\n' {
		line = nl + line
	}
	return d.splice(pos, pos, line)
}

func (d *Document) appendTable(path []string, key, value string) error {
	nl := d.newline()
	text := "[" + formatKey(path) + "]" + nl + formatKey([]string{key}) + " = " + quote(value, false) + nl
	if d.src != "" {
		text = nl + text
		if !strings.HasSuffix(d.src, "\n") {
			text = nl + text
		}
	}
	return d.splice(len(d.src), len(d.src), text)
}

// newline is the line ending used by the document's first line.
func (d *Document) newline() string {
	if i := strings.IndexByte(d.src, '\n'); i > 0 && d.src[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// itemSpan is the byte range removed when deleting item i. Inline members
// take one neighbouring comma with them.
func (d *Document) itemSpan(i int) [2]int {
	it := d.items[i]
	if it.parent < 0 {
		return [2]int{it.lineStart, it.end}
	}
	owner := d.items[it.parent]
	k := 0
	for k < len(owner.members) && owner.members[k] != i {
		k++
	}
	switch {
	case k < len(owner.members)-1:
		return [2]int{it.keyStart, d.items[owner.members[k+1]].keyStart}
	case k > 0:
		return [2]int{d.items[owner.members[k-1]].valEnd, it.valEnd}
	default:
		return [2]int{owner.valStart + 1, owner.closeBrace}
	}
}

// tableSpan is the byte range of table ti. Comment lines directly above the
// next header stay with that header.
func (d *Document) tableSpan(ti int) [2]int {
	start := d.tables[ti].lineStart
	if ti+1 == len(d.tables) {
		return [2]int{start, len(d.src)}
	}
	next := d.tables[ti+1].lineStart

	floor := d.tables[ti].headerEnd
	for _, it := range d.items {
		if it.parent < 0 && it.table == ti && it.end > floor {
			floor = it.end
		}
	}
	end := next
	for end > floor {
		ls := lineStart(d.src, end-1)
		if ls < floor {
			break
		}
		line := strings.TrimSpace(d.src[ls:end])
		if line != "" && !strings.HasPrefix(line, "#") {
			break
		}
		end = ls
	}
	for end < next {
		le := lineEnd(d.src, end)
		if strings.TrimSpace(d.src[end:le]) != "" {
			break
		}
		end = le
	}
	return [2]int{start, end}
}

func (d *Document) splice(start, end int, text string) error {
	return d.reset(d.src[:start] + text + d.src[end:])
}

func (d *Document) reset(src string) error {
	items, tables, err := parse(src)
	if err != nil {
		return fmt.Errorf("tomledit: edit produced invalid document: %w", err)
	}
	d.src, d.items, d.tables = src, items, tables
	return nil
}

func (d *Document) find(path []string) int {
	for i, it := range d.items {
		if equal(it.path, path) {
			return i
		}
	}
	return -1
}

func (d *Document) findTable(path []string) int {
	for i, t := range d.tables {
		if !t.array && equal(t.path, path) {
			return i
		}
	}
	return -1
}

func (d *Document) tablePath(ti int) []string {
	if ti < 0 {
		return nil
	}
	return d.tables[ti].path
}

func hasPrefix(path, prefix []string) bool {
	return len(path) >= len(prefix) && equal(path[:len(prefix)], prefix)
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
