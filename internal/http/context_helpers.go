package httpx

import (
	"context"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
)

// claimsKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type claimsKey struct{}

// SetClaimsInContext returns a child context that carries the given session claims.
func SetClaimsInContext(ctx context.Context, claims domainauth.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the session claims from context and a boolean
// indicating presence. Absence means the request is anonymous.
func GetClaimsFromContext(ctx context.Context) (domainauth.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domainauth.SessionClaims)
	return claims, ok
}
