// AngelaMos | 2026
// context.go

package core

import (
	"context"
)

type contextKey string

const correlationIDKey contextKey = "correlation_id"

const CorrelationIDHeader = "X-Correlation-ID"

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}
