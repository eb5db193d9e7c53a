package predict

import "context"

type contextKey string

const requestIDKey contextKey = "predict_request_id"

// WithRequestID attaches a correlation id that the client sends as
// X-Request-ID and the logging decorator records.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the id attached to ctx, or a fresh one from gen.
func RequestIDFrom(ctx context.Context, gen func() string) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v
	}
	if gen == nil {
		return ""
	}
	return gen()
}
