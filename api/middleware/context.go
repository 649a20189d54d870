package middleware

import (
	"context"

	"github.com/angelmondragon/teastore-backend/internal/permissions"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxAccessID  contextKey = "access_id"
	ctxPrincipal contextKey = "principal"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the jti of the token that authenticated the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// PrincipalFromContext returns the caller resolved by the permission gate.
func PrincipalFromContext(ctx context.Context) (permissions.Principal, bool) {
	if ctx == nil {
		return permissions.Principal{}, false
	}
	p, ok := ctx.Value(ctxPrincipal).(permissions.Principal)
	return p, ok
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

func WithPrincipal(ctx context.Context, p permissions.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, p)
}
