// Package shared provides helpers common to all API handlers: request
// decoding and validation, JSON responses, and request-scoped context values.
package shared

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// traceIDKey is the context key under which the request trace ID is stored.
const traceIDKey contextKey = "trace_id"

// SetTraceID returns a context carrying a freshly generated trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.New().String())
}

// GetTraceID returns the trace ID carried by ctx, or an empty string.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}
