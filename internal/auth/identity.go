package auth

import (
	"context"

	"hotel/internal/models"
)

type ctxKey int

const (
	userKey ctxKey = iota
	claimsKey
)

// WithUser stores the resolved session on ctx.
func WithUser(ctx context.Context, user *models.User, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, claimsKey, claims)
}

// CurrentUser returns the signed-in user, or nil. There is no fallback user.
func CurrentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func CurrentClaims(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey).(*Claims)
	return c
}

// IsAdmin reports whether the current user holds the ADMIN role.
func IsAdmin(ctx context.Context) bool {
	return CurrentUser(ctx).IsAdmin()
}
