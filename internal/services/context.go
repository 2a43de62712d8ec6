package services

import (
	"context"

	"chatapp/pkg/logger"
)

type ctxKey string

var claimsKey ctxKey = "access_claims"

// WithClaims attaches verified claims to ctx. The identity is also exposed to the logger.
func WithClaims(ctx context.Context, claims AccessClaims) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	return context.WithValue(ctx, logger.IdentityKey, claims.Identity())
}

func ClaimsFromContext(ctx context.Context) (AccessClaims, bool) {
	value := ctx.Value(claimsKey)
	if value == nil {
		return AccessClaims{}, false
	}
	claims, ok := value.(AccessClaims)
	return claims, ok
}

func IdentityFromContext(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.Identity() == "" {
		return "", false
	}
	return claims.Identity(), true
}
