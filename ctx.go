package storefront

import (
	"context"

	"github.com/goliatone/go-router"
)

var principalCtxKey = &contextKey{"principal"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithPrincipal sets the Principal in the given context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFromContext finds the principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	raw, ok := ctx.Value(principalCtxKey).(Principal)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(ctx context.Context, claims AuthClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// GetRouterClaims extracts the AuthClaims from the router context
func GetRouterClaims(ctx router.Context, key string) (AuthClaims, bool) {
	if key == "" {
		key = "user" // Default key used by the guard middleware
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// GetRouterPrincipal derives the request principal from the claims the guard
// stored in router locals.
func GetRouterPrincipal(ctx router.Context, key string) (Principal, error) {
	claims, ok := GetRouterClaims(ctx, key)
	if !ok {
		return Principal{}, ErrTokenMissing
	}
	return PrincipalFromClaims(claims), nil
}
