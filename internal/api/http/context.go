package http

import (
	"context"

	"leaseo-backend/internal/domain"
)

type contextKey string

const principalContextKey contextKey = "principal"

// ContextWithPrincipal attaches the authenticated principal to the request context.
func ContextWithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext extracts the authenticated principal set by the auth middleware.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(domain.Principal)
	return p, ok
}
