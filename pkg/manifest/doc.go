// Package manifest models a Cargo.toml file as a set of dependency slots.
//
// A [Slot] names one place a requirement can live: a dependency kind
// (normal, dev, build), an optional target platform, and the key the entry
// has in the document. [Manifest] reads and rewrites the requirement text of
// slots through [tomledit], so every byte outside the edited slot survives.
// Semantic questions (which dependencies exist, where they come from,
// workspace layout) are answered by decoding the same text with
// BurntSushi/toml.
//
// # Entry Shapes
//
// All of these are understood for reading and writing:
//
//	[dependencies]
//	serde = "1.0"                                  # bare string
//	tokio = { version = "1", features = ["full"] } # inline table
//	log.version = "0.4"                            # dotted keys
//
//	[dependencies.regex]                           # sub-table
//	version = "1.5"
//
// Writing to a table-shaped entry only touches its version key.
//
// [tomledit]: github.com/matzehuels/dargo/pkg/tomledit
package manifest
