// Package cli implements the dargo command-line interface.
//
// The commands edit a Cargo manifest in place:
//   - add: add dependencies at their latest (or a given) version
//   - rm: remove dependencies
//   - upgrade: bump pinned versions to the latest release, per workspace member
//   - cache: inspect and clear the index cache
//
// # Logging
//
// Logs go to stderr through charmbracelet/log. The default level is warn;
// --verbose (-v) enables debug output and --quiet (-q) keeps only errors.
// The logger travels on the command context (see loggerFromContext).
// Summaries of what changed are printed to stdout, not logged.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time.
// Example output: "planned upgrade of demo (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports registry cache and HTTP activity at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache store", "key", key, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, url string) {
	h.logger.Debug("request", "method", method, "url", url)
}

func (h logHooks) OnResponse(_ context.Context, method, url string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "url", url, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, url string, err error) {
	h.logger.Warn("request failed", "method", method, "url", url, "err", err)
}
