package scoped

import (
	"context"

	"github.com/dmitrijs2005/gophsession/internal/logging"
)

// Reporter receives rebind failures. Implementations must not block.
type Reporter interface {
	ReportRebindFailure(ctx context.Context, scope string, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, scope string, err error)

func (f ReporterFunc) ReportRebindFailure(ctx context.Context, scope string, err error) {
	f(ctx, scope, err)
}

// LogReporter writes failures as warnings.
type LogReporter struct {
	Log logging.Logger
}

func (r LogReporter) ReportRebindFailure(ctx context.Context, scope string, err error) {
	r.Log.Warn(ctx, "scoped store rebind failed", "scope", scope, "error", err)
}
