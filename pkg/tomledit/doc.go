// Package tomledit edits TOML documents without disturbing their layout.
//
// A [Document] keeps the original text and an index of byte spans for every
// table header, key/value pair and inline-table member. Edits splice new
// bytes into those spans and re-index, so everything outside the edited span
// (comments, blank lines, key order, quoting, indentation) survives:
//
//	doc, err := tomledit.Parse(text)
//	doc.GetString("dependencies", "serde")           // "1.0"
//	doc.SetString("1.0.200", "dependencies", "serde") // only the value bytes change
//	doc.Delete("dev-dependencies", "tempfile")       // removes that one line
//	doc.String() == text                              // true until the first edit
//
// # Scope
//
// The index is built from the expression stream of go-toml's unstable
// parser, which reports the byte range of every key and value. Only string
// values are decoded. Semantic validation (for example duplicate keys) is
// left to a full decoder.
//
// Inserted lines use the line ending of the document's first line.
//
// # Insertion Rules
//
// [Document.SetString] on a missing key inserts it into the deepest existing
// container:
//
//   - an inline table gets a new member before its closing brace
//   - a [header] table gets a new line after its last key
//   - a table made of dotted keys gets another dotted key line
//   - anything else gets a new [header] table at the end of the document
package tomledit
