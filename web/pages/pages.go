// Package pages serves the server-rendered HTML views: a cookie login and
// list, detail, create and delete pages for the catalog and orders.
package pages

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/teastore-backend/api/middleware"
	"github.com/angelmondragon/teastore-backend/internal/auth"
	"github.com/angelmondragon/teastore-backend/internal/categories"
	"github.com/angelmondragon/teastore-backend/internal/orders"
	"github.com/angelmondragon/teastore-backend/internal/origins"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
	"github.com/angelmondragon/teastore-backend/internal/teas"
	"github.com/angelmondragon/teastore-backend/pkg/auth/session"
	"github.com/angelmondragon/teastore-backend/pkg/config"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"login", "error",
	"tea_list", "tea_detail", "tea_form",
	"category_list", "category_detail", "category_form",
	"origin_list", "origin_detail", "origin_form",
	"order_list", "order_detail", "order_form",
	"item_list", "item_detail", "item_form",
}

type sessionStore interface {
	session.AccessSessionChecker
	Revoke(ctx context.Context, accessID string) error
}

type userLister interface {
	ListActive(ctx context.Context) ([]models.User, error)
}

type counterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Deps wires the pages to the domain services. Users and RateLimits are
// optional.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Auth        auth.Service
	Sessions    sessionStore
	Permissions permissions.Resolver
	Users       userLister
	RateLimits  counterStore

	Categories categories.Service
	Origins    origins.Service
	Teas       teas.Service
	Orders     orders.Service
}

type Handler struct {
	deps      Deps
	cookie    string
	templates map[string]*template.Template
}

// view is the data every template receives.
type view struct {
	Title     string
	Principal *permissions.Principal
	Errors    map[string]string
	Form      url.Values
	Data      any
}

func (v view) Staff() bool {
	return v.Principal != nil && v.Principal.IsPrivileged()
}

func New(deps Deps) (*Handler, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config required")
	}
	if deps.Auth == nil || deps.Sessions == nil || deps.Permissions == nil {
		return nil, fmt.Errorf("auth, sessions and permissions are required")
	}
	if deps.Categories == nil || deps.Origins == nil || deps.Teas == nil || deps.Orders == nil {
		return nil, fmt.Errorf("domain services are required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(baseFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Handler{deps: deps, cookie: deps.Config.Session.CookieName, templates: templates}, nil
}

// baseFuncs are bound at parse time; t is rebound per request.
var baseFuncs = template.FuncMap{
	"t":     func(key string) string { return key },
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(ts time.Time) string { return ts.Format("2006-01-02 15:04") },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"uuidStr": func(id *uuid.UUID) string {
		if id == nil {
			return ""
		}
		return id.String()
	},
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		h.renderError(w, req, http.StatusNotFound, i18n.MsgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		h.renderError(w, req, http.StatusMethodNotAllowed, i18n.MsgMethodNotAllowed)
	})

	r.Get("/login", h.loginForm)
	if h.deps.RateLimits != nil {
		cfg := h.deps.Config.AuthRateLimit
		policy := middleware.NewAuthRateLimitPolicy("web_login", cfg.LoginWindow, cfg.LoginIPLimit, cfg.LoginUsernameLimit)
		r.With(middleware.AuthRateLimit(policy, h.deps.RateLimits, h.deps.Logger)).Post("/login", h.login)
	} else {
		r.Post("/login", h.login)
	}
	r.Post("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/teas", http.StatusSeeOther)
		})

		r.Route("/teas", func(r chi.Router) {
			r.Get("/", h.teaList)
			r.Get("/new", h.teaNew)
			r.Post("/new", h.teaCreate)
			r.Get("/{id}", h.teaDetail)
			r.Post("/{id}", h.teaDelete)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.categoryList)
			r.Get("/new", h.categoryNew)
			r.Post("/new", h.categoryCreate)
			r.Get("/{id}", h.categoryDetail)
			r.Post("/{id}", h.categoryDelete)
		})
		r.Route("/origins", func(r chi.Router) {
			r.Get("/", h.originList)
			r.Get("/new", h.originNew)
			r.Post("/new", h.originCreate)
			r.Get("/{id}", h.originDetail)
			r.Post("/{id}", h.originDelete)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.orderList)
			r.Get("/new", h.orderNew)
			r.Post("/new", h.orderCreate)
			r.Get("/{id}", h.orderDetail)
			r.Post("/{id}", h.orderDelete)
		})
		r.Route("/order-items", func(r chi.Router) {
			r.Get("/", h.itemList)
			r.Get("/new", h.itemNew)
			r.Post("/new", h.itemCreate)
			r.Get("/{id}", h.itemDetail)
			r.Post("/{id}", h.itemDelete)
		})
	})
	return r
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	base, ok := h.templates[name]
	if !ok {
		h.deps.Logger.Error(r.Context(), "web.template_missing", fmt.Errorf("template %q not loaded", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	tmpl, err := base.Clone()
	if err != nil {
		h.deps.Logger.Error(r.Context(), "web.template_clone", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	ctx := r.Context()
	tmpl.Funcs(template.FuncMap{"t": func(key string) string { return i18n.T(ctx, key) }})

	if v.Principal == nil {
		if p, ok := middleware.PrincipalFromContext(ctx); ok {
			v.Principal = &p
		}
	}
	if v.Form == nil {
		v.Form = url.Values{}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", v); err != nil {
		h.deps.Logger.Error(ctx, "web.render_failed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", view{Title: message, Data: status})
}

// fail maps a service error onto an error page.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())
	if meta.HTTPStatus >= http.StatusInternalServerError {
		h.deps.Logger.Error(r.Context(), "web.request_failed", err)
		h.renderError(w, r, meta.HTTPStatus, i18n.MsgInternal)
		return
	}
	if typed.Code() == pkgerrors.CodeUnauthorized {
		redirectToLogin(w, r)
		return
	}
	msg := typed.Message()
	if msg == "" {
		msg = meta.PublicMessage
	}
	h.renderError(w, r, meta.HTTPStatus, msg)
}

// formErrors extracts translated field errors from a validation failure. ok
// is false for any other kind of error.
func formErrors(ctx context.Context, err error) (map[string]string, bool) {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		return nil, false
	}
	out := map[string]string{}
	if details, ok := typed.Details().(map[string]string); ok {
		out = i18n.TranslateDetails(ctx, details)
	}
	if len(out) == 0 {
		out["_"] = i18n.T(ctx, typed.Message())
	}
	return out, true
}

func principal(r *http.Request) permissions.Principal {
	p, _ := middleware.PrincipalFromContext(r.Context())
	return p
}

// allowed renders a 403 page and returns false when the caller lacks the
// permission for action on entity.
func (h *Handler) allowed(w http.ResponseWriter, r *http.Request, codename string) bool {
	if principal(r).Has(codename) {
		return true
	}
	h.deps.Logger.Warn(h.deps.Logger.WithPermission(r.Context(), codename), "permission.denied")
	h.renderError(w, r, http.StatusForbidden, i18n.MsgForbidden)
	return false
}

// staffOnly hides staff pages from everyone else behind a 404.
func (h *Handler) staffOnly(w http.ResponseWriter, r *http.Request) bool {
	if principal(r).IsPrivileged() {
		return true
	}
	h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
	return false
}

func routeID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}
