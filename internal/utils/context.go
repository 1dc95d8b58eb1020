// Package utils provides small helpers shared across packages: context
// keys, id generation, payload signing, JSON responses and the outbound
// HTTP client.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey stores the request trace id set by the HTTP middleware.
//
//	ctx := context.WithValue(ctx, utils.TraceIDCtxKey, "0190...")
var TraceIDCtxKey = contextKey("traceID")

// GetTraceIDFromContext returns the trace id stored under TraceIDCtxKey.
// ok is false when the value is missing or not a string.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok
}
