// Package authctx propagates the authenticated principal through the
// request-scoped context. A request without a principal is anonymous.
package authctx

import (
	"context"

	"github.com/mytodoapp/todo/internal/domain"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Email  string
	Role   domain.Role
	UserID uint
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// Set stores the principal in the context.
func Set(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Get retrieves the principal from the context. The second return value is
// false for anonymous requests.
func Get(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// MustGet retrieves the principal from the context.
// Panics if missing; use only behind middleware that guarantees a principal.
func MustGet(ctx context.Context) Principal {
	p, ok := Get(ctx)
	if !ok {
		panic("authctx: no principal in context")
	}
	return p
}
