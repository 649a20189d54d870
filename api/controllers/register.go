package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/api/validators"
	"github.com/angelmondragon/teastore-backend/internal/auth"
	"github.com/angelmondragon/teastore-backend/internal/users"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

type registrar interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error)
}

type registerResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthRegister creates a user in the default group and signs them in.
func AuthRegister(reg auth.RegisterService, svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return registerAndLogin(reg, svc, "register", logg)
}

// AdminAuthRegister creates a superuser. Only mounted outside production.
func AdminAuthRegister(reg auth.AdminRegisterService, svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return registerAndLogin(reg, svc, "admin_register", logg)
}

func registerAndLogin(reg registrar, svc auth.Service, flow string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := reg.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{"flow": flow, "user_id": user.ID.String()})
			logg.Info(ctx, "auth.registered")
		}

		result, err := svc.Login(r.Context(), auth.LoginRequest{Username: body.Username, Password: body.Password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(tokenHeader, result.Token)
		responses.WriteSuccessStatus(w, http.StatusCreated, registerResponse{
			Token:        result.Token,
			RefreshToken: result.RefreshToken,
		})
	}
}
