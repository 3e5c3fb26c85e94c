package promptcast

import (
	"context"

	"github.com/BaSui01/promptcast/internal/ctxkeys"
)

// WithTraceID returns a context whose casts carry the given trace ID in
// requests, spans and logs instead of a generated one. Use it to tie
// casts into an existing request trail.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return ctxkeys.WithTraceID(ctx, traceID)
}
