package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/teastore-backend/api/responses"
	pkgAuth "github.com/angelmondragon/teastore-backend/pkg/auth"
	"github.com/angelmondragon/teastore-backend/pkg/auth/session"
	"github.com/angelmondragon/teastore-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

// TokenFromRequest returns the bearer token, falling back to the session
// cookie when cookieName is set.
func TokenFromRequest(r *http.Request, cookieName string) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			return strings.TrimSpace(raw[7:])
		}
		return raw
	}
	if cookieName == "" {
		return ""
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// Authenticate validates token and checks that its session is still open.
func Authenticate(ctx context.Context, cfg config.JWTConfig, verifier session.AccessSessionChecker, token string) (*pkgAuth.AccessTokenClaims, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, i18n.MsgAuthRequired)
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, i18n.MsgAuthRequired)
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, i18n.MsgAuthRequired)
	}
	if verifier != nil {
		ok, err := verifier.HasSession(ctx, claims.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, i18n.MsgAuthRequired)
		}
	}
	return claims, nil
}

// WithClaims seeds ctx with the authenticated user and token id.
func WithClaims(ctx context.Context, logg *logger.Logger, claims *pkgAuth.AccessTokenClaims) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, claims.UserID.String())
	ctx = context.WithValue(ctx, ctxAccessID, claims.ID)
	if logg != nil {
		ctx = logg.WithUserID(ctx, claims.UserID.String())
	}
	return ctx
}

// Auth accepts a bearer token or the session cookie and seeds the request
// context with the caller.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := Authenticate(r.Context(), cfg, verifier, TokenFromRequest(r, cookieName))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), logg, claims)))
		})
	}
}
