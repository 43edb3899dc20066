// Package integrations provides the HTTP plumbing shared by registry clients.
//
// [Client] wraps an http.Client with default headers, a [cache.Cache] for
// response bodies, and retry with exponential backoff for transient failures.
// Registry-specific clients (see the crates subpackage) embed it.
//
// # Errors
//
//   - [ErrNotFound]: the registry answered 404 or 410.
//   - [ErrNetwork]: connection failures, 429 and 5xx responses (retried), and
//     any other unexpected status (not retried).
package integrations
