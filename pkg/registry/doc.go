// Package registry answers "which version should be pinned" questions
// against a package index.
//
// # Index
//
// [Index] is the collaborator every lookup goes through: it lists the
// releases of a package and can refresh its local copy. [Sparse] adapts the
// crates.io sparse index client; [Memory] is an in-process index for tests
// and offline use.
//
// # Lookups
//
//   - [BestVersion] returns the highest release matching a requirement,
//     ignoring yanked releases and, unless asked, prereleases.
//   - [Resolve] does the same, but when the exact name is not published it
//     retries every '-'/'_' spelling of the name and reports which one matched.
//
// # Refreshing
//
// [Updater] refreshes each index at most once per command, no matter how many
// dependencies or workspace members point at it.
package registry
