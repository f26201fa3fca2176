package graphkit

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// ErrorReporter forwards quarantine failures (spec.md §7.2) to Sentry,
// grounded directly on the teacher's SentryReporter
// (pkg/bubbly/observability/sentry_reporter.go): same hub-based capture,
// same functional-options client setup, reshaped around InternalError
// instead of HandlerPanicError.
type ErrorReporter struct {
	hub *sentry.Hub
}

// ReporterOption configures the Sentry client used by NewErrorReporter.
type ReporterOption func(*sentry.ClientOptions)

// WithDebug enables Sentry SDK debug logging.
func WithDebug(debug bool) ReporterOption {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// WithEnvironment tags every reported event with environment.
func WithEnvironment(environment string) ReporterOption {
	return func(o *sentry.ClientOptions) { o.Environment = environment }
}

// WithRelease tags every reported event with release.
func WithRelease(release string) ReporterOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// NewErrorReporter initializes the Sentry SDK with dsn and returns a
// reporter bound to its current hub. An empty dsn disables sending, which
// is the intended setup for tests and local development.
func NewErrorReporter(dsn string, opts ...ReporterOption) (*ErrorReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, err
	}
	return &ErrorReporter{hub: sentry.CurrentHub()}, nil
}

// ReportQuarantine sends err, a component-lifecycle panic the kernel has
// already recovered and quarantined, to Sentry with the failing path as
// scope tags.
func (r *ErrorReporter) ReportQuarantine(err *InternalError) {
	if r == nil || r.hub == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		if len(err.Path) > 0 {
			scope.SetTag("component", err.Path[len(err.Path)-1])
		}
		scope.SetExtra("path", err.Path)
		r.hub.CaptureException(err)
	})
}

// Flush blocks until pending events are sent or timeout elapses.
func (r *ErrorReporter) Flush(timeout time.Duration) {
	if r == nil {
		return
	}
	sentry.Flush(timeout)
}
