// Package correlation carries a request's correlation id through contexts so
// logs and published messages can be tied back to the HTTP call that caused them.
package correlation

import "context"

// Header is the HTTP header that carries the correlation id.
const Header = "X-Correlation-ID"

type ctxKey struct{}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFromContext returns the correlation id in ctx, or "" when there is none.
func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
