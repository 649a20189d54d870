package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/teastore-backend/api/routes"
	"github.com/angelmondragon/teastore-backend/internal/auth"
	"github.com/angelmondragon/teastore-backend/internal/categories"
	"github.com/angelmondragon/teastore-backend/internal/orders"
	"github.com/angelmondragon/teastore-backend/internal/origins"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
	"github.com/angelmondragon/teastore-backend/internal/teas"
	"github.com/angelmondragon/teastore-backend/internal/users"
	"github.com/angelmondragon/teastore-backend/pkg/auth/session"
	"github.com/angelmondragon/teastore-backend/pkg/config"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
	"github.com/angelmondragon/teastore-backend/pkg/metrics"
	"github.com/angelmondragon/teastore-backend/pkg/migrate"
	"github.com/angelmondragon/teastore-backend/pkg/redis"
	"github.com/angelmondragon/teastore-backend/web/pages"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	perms, err := permissions.NewService(dbClient, redisClient, cfg.Permissions.CacheTTL, logg)
	if err != nil {
		return err
	}
	if err := perms.EnsureDefaults(ctx); err != nil {
		return err
	}

	userRepo := users.NewRepository(dbClient.DB())
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		return err
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		Groups:         perms,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}
	var adminRegister auth.AdminRegisterService
	if !cfg.App.IsProd() {
		adminRegister, err = auth.NewAdminRegisterService(auth.AdminRegisterServiceParams{
			DB:             dbClient,
			PasswordConfig: cfg.Password,
		})
		if err != nil {
			return err
		}
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}
	originService, err := origins.NewService(origins.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return err
	}
	teaService, err := teas.NewService(teas.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}
	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return err
	}

	web, err := pages.New(pages.Deps{
		Config:      cfg,
		Logger:      logg,
		Auth:        authService,
		Sessions:    sessionManager,
		Permissions: perms,
		Users:       userRepo,
		RateLimits:  redisClient,
		Categories:  categoryService,
		Origins:     originService,
		Teas:        teaService,
		Orders:      orderService,
	})
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := routes.NewRouter(routes.Dependencies{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		Sessions:       sessionManager,
		Permissions:    perms,
		Metrics:        metrics.NewHTTPMetrics(registry),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Translator:     i18n.New(cfg.App.DefaultLanguage),
		Auth:           authService,
		Register:       registerService,
		AdminRegister:  adminRegister,
		Categories:     categoryService,
		Origins:        originService,
		Teas:           teaService,
		Orders:         orderService,
		Web:            web.Routes(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
