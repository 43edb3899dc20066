// Package httputil provides retry helpers for registry HTTP clients.
//
// Wrap transient failures (connection errors, 5xx responses) in
// [RetryableError] and run the request through [Retry] or
// [RetryWithBackoff]. Any other error is returned immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Defaults: 3 attempts, 1 second initial delay doubling after each failure.
package httputil
