// Package pkg holds the libraries behind the dargo command.
//
// # Overview
//
// Dargo adds, removes and upgrades dependencies in Cargo manifests. The
// packages split along the path a change takes:
//
//  1. [tomledit] - format-preserving TOML documents (read, replace, insert, delete)
//  2. [manifest] - Cargo.toml on top of tomledit: dependency slots, workspaces
//  3. [requirement] - Cargo version requirement grammar
//  4. [registry] - index lookups: best version, '-'/'_' name variants
//  5. [edit] - add/rm/upgrade plans and their application
//
// Supporting packages: [integrations] (HTTP client, crates.io sparse index),
// [cache] (file, Redis and null backends), [httputil] (retry with backoff),
// [errors] (coded errors), [observability] (cache and HTTP hooks) and
// [buildinfo].
//
// # Data flow
//
//	Cargo.toml ──> manifest.Load ──> edit.Plan* ──> registry (index lookups)
//	                                     │
//	                                     └──> edit.Apply ──> Manifest.Save
//
// A plan is computed completely before anything is written, so a failed
// lookup never leaves a half-edited manifest.
package pkg
