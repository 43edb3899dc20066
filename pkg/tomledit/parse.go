package tomledit

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

// ParseError reports malformed TOML with a 1-based position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

type valueKind int

const (
	valueOther valueKind = iota
	valueString
	valueInline
	valueArray
)

// item is one key/value pair, either on its own line or inside an inline table.
type item struct {
	path       []string
	table      int // index into Document.tables, -1 for the root table
	parent     int // enclosing inline table item, -1 for top-level pairs
	lineStart  int // start of the line (top-level) or of the key (members)
	keyStart   int
	valStart   int
	valEnd     int
	end        int // past the trailing newline (top-level) or valEnd (members)
	kind       valueKind
	literal    bool   // single-quoted string
	value      string // decoded string value
	closeBrace int    // offset of '}' for inline tables
	members    []int  // member items of inline tables, in order
}

// table is a [header] or [[header]] line.
type table struct {
	path      []string
	lineStart int
	headerEnd int // past the header's newline
	array     bool
}

// indexer turns the expressions of the go-toml parser into item and table
// spans. Byte offsets come from the parser's node ranges.
type indexer struct {
	src      string
	p        unstable.Parser
	items    []item
	tables   []table
	cur      []string
	curTable int
	arrays   map[string]int
}

func parse(src string) ([]item, []table, error) {
	ix := &indexer{src: src, curTable: -1, arrays: make(map[string]int)}
	data := []byte(src)
	ix.p.Reset(data)
	for ix.p.NextExpression() {
		e := ix.p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			ix.addTable(e)
		case unstable.KeyValue:
			i := ix.addKeyValue(e, ix.cur, -1)
			ix.items[i].lineStart = lineStart(src, ix.items[i].keyStart)
			ix.items[i].end = lineEnd(src, ix.items[i].valEnd)
		}
	}
	if err := ix.p.Error(); err != nil {
		return nil, nil, parseError(data, err)
	}
	return ix.items, ix.tables, nil
}

func (ix *indexer) addTable(e *unstable.Node) {
	keys, first, last := ix.key(e.Key())
	path := keys
	array := e.Kind == unstable.ArrayTable
	if array {
		id := strings.Join(keys, "\x00")
		path = append(append([]string(nil), keys...), fmt.Sprintf("[%d]", ix.arrays[id]))
		ix.arrays[id]++
	}
	ix.tables = append(ix.tables, table{
		path:      path,
		lineStart: lineStart(ix.src, first),
		headerEnd: lineEnd(ix.src, last),
		array:     array,
	})
	ix.cur = path
	ix.curTable = len(ix.tables) - 1
}

// addKeyValue indexes a pair under base and, for inline tables, its members.
// It returns the new item's index.
func (ix *indexer) addKeyValue(e *unstable.Node, base []string, parent int) int {
	keys, keyStart, keyEnd := ix.key(e.Key())
	path := make([]string, 0, len(base)+len(keys))
	path = append(append(path, base...), keys...)

	valEnd := int(e.Raw.Offset + e.Raw.Length)
	it := item{
		path:      path,
		table:     ix.curTable,
		parent:    parent,
		lineStart: keyStart,
		keyStart:  keyStart,
		valStart:  valueStart(ix.src, keyEnd),
		valEnd:    valEnd,
		end:       valEnd,
	}

	v := e.Value()
	switch v.Kind {
	case unstable.String:
		it.kind = valueString
		it.value = string(v.Data)
		it.literal = ix.src[it.valStart] == '\''
	case unstable.InlineTable:
		it.kind = valueInline
		it.closeBrace = valEnd - 1
	case unstable.Array:
		it.kind = valueArray
	}

	idx := len(ix.items)
	ix.items = append(ix.items, it)
	if v.Kind == unstable.InlineTable {
		children := v.Children()
		for children.Next() {
			m := ix.addKeyValue(children.Node(), path, idx)
			ix.items[idx].members = append(ix.items[idx].members, m)
		}
	}
	return idx
}

// key decodes a dotted key and returns the offsets where it starts and ends.
func (ix *indexer) key(it unstable.Iterator) (keys []string, start, end int) {
	start = -1
	for it.Next() {
		k := it.Node()
		keys = append(keys, string(k.Data))
		if start < 0 {
			start = int(k.Raw.Offset)
		}
		end = int(k.Raw.Offset + k.Raw.Length)
	}
	return keys, start, end
}

// valueStart finds the first byte of the value following a key that ends at
// keyEnd.
func valueStart(src string, keyEnd int) int {
	i := keyEnd + strings.IndexByte(src[keyEnd:], '=') + 1
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

func lineStart(src string, pos int) int {
	return strings.LastIndexByte(src[:pos], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line that
// contains pos, or len(src) on the last line.
func lineEnd(src string, pos int) int {
	if i := strings.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

// parseError positions a go-toml parser error. The highlight is a subslice of
// data, so its offset is the difference in capacity.
func parseError(data []byte, err error) error {
	var perr *unstable.ParserError
	if !stderrors.As(err, &perr) {
		return &ParseError{Line: 1, Col: 1, Msg: err.Error()}
	}
	off := len(data)
	if perr.Highlight != nil {
		if o := cap(data) - cap(perr.Highlight); o >= 0 && o <= len(data) {
			off = o
		}
	}
	lead := string(data[:off])
	return &ParseError{
		Line: strings.Count(lead, "\n") + 1,
		Col:  off - strings.LastIndexByte(lead, '\n'),
		Msg:  perr.Message,
	}
}

func isBare(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}
