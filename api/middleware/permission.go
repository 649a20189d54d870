package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

type denialCounter interface {
	IncDenied(permission string)
}

// RequirePermission admits the request only when the caller holds the
// codename derived from the request method and entity. Must run after Auth.
func RequirePermission(resolver permissions.Resolver, entity string, denials denialCounter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			codename, ok := permissions.RequiredPermission(r.Method, entity)
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, i18n.MsgMethodNotAllowed))
				return
			}

			principal, err := resolvePrincipal(r, resolver)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			if !principal.Has(codename) {
				if denials != nil {
					denials.IncDenied(codename)
				}
				if logg != nil {
					logg.Warn(logg.WithPermission(ctx, codename), "permission.denied")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, i18n.MsgForbidden))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, *principal)))
		})
	}
}

func resolvePrincipal(r *http.Request, resolver permissions.Resolver) (*permissions.Principal, error) {
	if p, ok := PrincipalFromContext(r.Context()); ok {
		return &p, nil
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "permission resolver unavailable")
	}
	userID, err := uuid.Parse(UserIDFromContext(r.Context()))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, i18n.MsgAuthRequired)
	}
	return resolver.Resolve(r.Context(), userID)
}
