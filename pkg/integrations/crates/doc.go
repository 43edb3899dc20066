// Package crates reads the crates.io sparse registry index.
//
// # Overview
//
// Cargo registries publish one file per crate listing every release as a line
// of JSON. This package fetches that file over HTTP, decodes the fields dargo
// needs (name, version, yanked), and caches the result.
//
// # Usage
//
//	client := crates.NewClient(backend, "", 24*time.Hour)
//	releases, err := client.FetchIndex(ctx, "serde", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range releases {
//	    fmt.Println(r.Version, r.Yanked)
//	}
//
// # Index Layout
//
// [IndexPath] maps a crate name to its file: one- and two-letter names live in
// "1/" and "2/", three-letter names in "3/{first letter}/", everything else in
// "{first two}/{next two}/". Separators are not normalized, so "serde_json"
// and "serde-json" are different files.
//
// # Caching
//
// Index files are cached under the "index:" namespace. Pass refresh=true to
// re-download and overwrite the cached copy.
package crates
