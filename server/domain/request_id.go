package domain

import "context"

type requestIDKey struct{}

// WithRequestID はリクエストIDを ctx に載せます。
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom は ctx のリクエストIDを返します。無ければ空文字です。
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
