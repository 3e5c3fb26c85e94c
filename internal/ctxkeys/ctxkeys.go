// Package ctxkeys stores request-scoped correlation values in a context
// behind an unexported key type, so callers cannot collide with them.
package ctxkeys

import "context"

type contextKey string

const traceIDKey contextKey = "trace_id"

// WithTraceID returns a context carrying the given trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID reports the trace ID stored in ctx, if any.
func TraceID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
