package contextx

import (
	"context"
	"fmt"
)

const maxTraceIDLen = 64

// TraceID correlates the log lines of one API request, including the SGS
// calls made on its behalf.
type TraceID string

type contextKeyTraceID struct{}

func (t TraceID) String() string {
	return string(t)
}

// Valid reports whether t is a non-empty token of at most 64 characters drawn
// from letters, digits and "-_.:". Anything else is not echoed back to clients.
func (t TraceID) Valid() bool {
	if t == "" || len(t) > maxTraceIDLen {
		return false
	}

	for _, c := range []byte(t) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}

	return true
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
