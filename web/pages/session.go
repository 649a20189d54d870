package pages

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/teastore-backend/api/middleware"
	"github.com/angelmondragon/teastore-backend/internal/auth"
	pkgAuth "github.com/angelmondragon/teastore-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

const defaultLanding = "/teas"

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	form := url.Values{}
	form.Set("next", safeNext(r.URL.Query().Get("next")))
	h.render(w, r, http.StatusOK, "login", view{Title: "Log in", Form: form})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, i18n.MsgValidationFailed)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	next := safeNext(r.PostForm.Get("next"))

	resp, err := h.deps.Auth.Login(r.Context(), auth.LoginRequest{
		Username: username,
		Password: r.PostForm.Get("password"),
	})
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) && !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			h.fail(w, r, err)
			return
		}
		form := url.Values{}
		form.Set("username", username)
		form.Set("next", next)
		h.render(w, r, http.StatusUnauthorized, "login", view{
			Title:  "Log in",
			Form:   form,
			Errors: map[string]string{"_": i18n.T(r.Context(), i18n.MsgInvalidCredentials)},
		})
		return
	}

	cfg := h.deps.Config
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   cfg.JWT.ExpirationMinutes * 60,
		HttpOnly: true,
		Secure:   cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.deps.Logger.Info(h.deps.Logger.WithUserID(r.Context(), resp.User.ID.String()), "web.login")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// logout revokes the cookie's session, even if the token already expired,
// then clears the cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookie); err == nil && cookie.Value != "" {
		claims, err := pkgAuth.ParseAccessTokenAllowExpired(h.deps.Config.JWT, cookie.Value)
		if err == nil && claims.ID != "" {
			if err := h.deps.Sessions.Revoke(r.Context(), claims.ID); err != nil {
				h.deps.Logger.Error(r.Context(), "web.logout_revoke_failed", err)
			}
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.deps.Config.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// requireSession sends anonymous visitors to the login page and puts the
// resolved principal on the context of everyone else.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token := ""
		if cookie, err := r.Cookie(h.cookie); err == nil {
			token = strings.TrimSpace(cookie.Value)
		}
		claims, err := middleware.Authenticate(ctx, h.deps.Config.JWT, h.deps.Sessions, token)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
				redirectToLogin(w, r)
				return
			}
			h.fail(w, r, err)
			return
		}
		ctx = middleware.WithClaims(ctx, h.deps.Logger, claims)

		p, err := h.deps.Permissions.Resolve(ctx, claims.UserID)
		if err != nil {
			h.fail(w, r.WithContext(ctx), err)
			return
		}
		ctx = middleware.WithPrincipal(ctx, *p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if r.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return defaultLanding
	}
	if strings.HasPrefix(next, "/login") {
		return defaultLanding
	}
	return next
}
