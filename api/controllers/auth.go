package controllers

import (
	"net/http"

	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/api/validators"
	"github.com/angelmondragon/teastore-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

// AuthLogin exchanges username and password for an access and refresh token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(tokenHeader, result.Token)
		responses.WriteSuccess(w, result)
	}
}
