package policy

import "context"

type contextKey struct{}

// WithCaller stores the resolved caller on the request context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// CallerFromContext returns the caller stored by the auth middleware, or
// the anonymous caller when none was resolved.
func CallerFromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(contextKey{}).(Caller); ok {
		return c
	}
	return Anonymous()
}
