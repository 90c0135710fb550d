// Package requestcontext provides HTTP-independent accessors for
// request-scoped values set by middleware and consumed by services.
package requestcontext

import "context"

type requestIDKey struct{}

// WithRequestID stores a request ID on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request ID, or "" when none was set.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
