package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/teastore-backend/api/controllers"
	"github.com/angelmondragon/teastore-backend/api/middleware"
	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/internal/auth"
	"github.com/angelmondragon/teastore-backend/internal/categories"
	"github.com/angelmondragon/teastore-backend/internal/orders"
	"github.com/angelmondragon/teastore-backend/internal/origins"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
	"github.com/angelmondragon/teastore-backend/internal/teas"
	"github.com/angelmondragon/teastore-backend/pkg/auth/session"
	"github.com/angelmondragon/teastore-backend/pkg/config"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
	"github.com/angelmondragon/teastore-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/teastore-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// RedisStore is the Redis surface the HTTP layer needs: idempotency records,
// rate limit counters and a readiness ping.
type RedisStore interface {
	pkgredis.IdempotencyStore
	pkgredis.Pinger
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// Dependencies wires the HTTP surface. Web is optional; when set it serves
// every path the API does not claim.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          RedisStore
	Sessions       sessionManager
	Permissions    permissions.Resolver
	Metrics        *metrics.HTTPMetrics
	MetricsHandler http.Handler
	Translator     *i18n.Translator

	Auth          auth.Service
	Register      auth.RegisterService
	AdminRegister auth.AdminRegisterService
	Categories    categories.Service
	Origins       origins.Service
	Teas          teas.Service
	Orders        orders.Service

	Web http.Handler
}

type crud struct {
	list, create, get, put, patch, remove http.HandlerFunc
}

func (c crud) mount(r chi.Router, create func(http.Handler) http.Handler) {
	r.Get("/", c.list)
	if create != nil {
		r.With(create).Post("/", c.create)
	} else {
		r.Post("/", c.create)
	}
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", c.get)
		r.Put("/", c.put)
		r.Patch("/", c.patch)
		r.Delete("/", c.remove)
	})
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, i18n.MsgNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, i18n.MsgMethodNotAllowed))
	})
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Language(deps.Translator),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)
	cookie := cfg.Session.CookieName

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg,
			controllers.ReadinessCheck{Name: "db", Ping: deps.DB.Ping},
			controllers.ReadinessCheck{Name: "redis", Ping: deps.Redis.Ping},
		))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Register, deps.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Sessions, cfg.JWT, cookie, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Sessions, cfg.JWT, cookie, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, cookie, logg))
			gate := func(entity string) func(http.Handler) http.Handler {
				return middleware.RequirePermission(deps.Permissions, entity, deps.Metrics, logg)
			}
			idempotent := middleware.Idempotency(deps.Redis, cfg.HTTP.IdempotencyTTL, logg)

			r.Route("/categories", func(r chi.Router) {
				r.Use(gate(permissions.EntityTeaCategory))
				crud{
					list:   controllers.CategoriesList(deps.Categories, logg),
					create: controllers.CategoriesCreate(deps.Categories, logg),
					get:    controllers.CategoriesGet(deps.Categories, logg),
					put:    controllers.CategoriesUpdate(deps.Categories, false, logg),
					patch:  controllers.CategoriesUpdate(deps.Categories, true, logg),
					remove: controllers.CategoriesDelete(deps.Categories, logg),
				}.mount(r, nil)
			})

			r.Route("/origins", func(r chi.Router) {
				r.Use(gate(permissions.EntityOrigin))
				crud{
					list:   controllers.OriginsList(deps.Origins, logg),
					create: controllers.OriginsCreate(deps.Origins, logg),
					get:    controllers.OriginsGet(deps.Origins, logg),
					put:    controllers.OriginsUpdate(deps.Origins, false, logg),
					patch:  controllers.OriginsUpdate(deps.Origins, true, logg),
					remove: controllers.OriginsDelete(deps.Origins, logg),
				}.mount(r, nil)
			})

			r.Route("/teas", func(r chi.Router) {
				r.Use(gate(permissions.EntityTea))
				r.Get("/search", controllers.TeasSearch(deps.Teas, logg))
				crud{
					list:   controllers.TeasList(deps.Teas, logg),
					create: controllers.TeasCreate(deps.Teas, logg),
					get:    controllers.TeasGet(deps.Teas, logg),
					put:    controllers.TeasUpdate(deps.Teas, false, logg),
					patch:  controllers.TeasUpdate(deps.Teas, true, logg),
					remove: controllers.TeasDelete(deps.Teas, logg),
				}.mount(r, nil)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(gate(permissions.EntityOrder))
				r.Get("/my", controllers.OrdersList(deps.Orders, true, logg))
				crud{
					list:   controllers.OrdersList(deps.Orders, false, logg),
					create: controllers.OrdersCreate(deps.Orders, logg),
					get:    controllers.OrdersGet(deps.Orders, logg),
					put:    controllers.OrdersUpdate(deps.Orders, false, logg),
					patch:  controllers.OrdersUpdate(deps.Orders, true, logg),
					remove: controllers.OrdersDelete(deps.Orders, logg),
				}.mount(r, idempotent)
			})

			r.Route("/order-items", func(r chi.Router) {
				r.Use(gate(permissions.EntityOrderItem))
				crud{
					list:   controllers.OrderItemsList(deps.Orders, logg),
					create: controllers.OrderItemsCreate(deps.Orders, logg),
					get:    controllers.OrderItemsGet(deps.Orders, logg),
					put:    controllers.OrderItemsUpdate(deps.Orders, false, logg),
					patch:  controllers.OrderItemsUpdate(deps.Orders, true, logg),
					remove: controllers.OrderItemsDelete(deps.Orders, logg),
				}.mount(r, idempotent)
			})
		})
	})

	if !cfg.App.IsProd() && deps.AdminRegister != nil {
		r.Route("/api/admin/v1/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AdminAuthRegister(deps.AdminRegister, deps.Auth, logg))
		})
	}

	if deps.Web != nil {
		r.Mount("/", deps.Web)
	}

	return r
}
