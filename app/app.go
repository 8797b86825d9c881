package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/guss-backend/app/eventbus"
	"github.com/Black-And-White-Club/guss-backend/app/modules/auth"
	authhandlers "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/guss-backend/app/modules/round"
	roundsubscribers "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/subscribers"
	"github.com/Black-And-White-Club/guss-backend/app/modules/user"
	"github.com/Black-And-White-Club/guss-backend/app/observability"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	roundmetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/round"
	usermetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/user"
	"github.com/Black-And-White-Club/guss-backend/config"
	"github.com/Black-And-White-Club/guss-backend/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"
)

const shutdownTimeout = 15 * time.Second

// App holds the wired modules and the HTTP server.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        chi.Router

	UserModule  *user.Module
	AuthModule  *auth.Module
	RoundModule *round.Module

	server *http.Server
}

// NewApp connects to the database and event bus and wires every module.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Provider.Logger

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	bus, err := eventbus.New(ctx, cfg.NATS.URL, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		Router:        NewRouter(cfg, obs),
	}

	if err := app.initializeModules(ctx); err != nil {
		app.Close()
		return nil, err
	}

	app.server = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

func (app *App) initializeModules(ctx context.Context) error {
	app.AccountModules(ctx)

	roundModule, err := round.NewModule(
		ctx,
		app.Config,
		app.Observability,
		app.DB,
		app.UserModule.GetRepository(),
		app.EventBus,
		roundmetrics.NewPrometheus(app.Observability.Registry.Prometheus),
		app.AuthModule.RequireAuth(),
		app.Router,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize round module: %w", err)
	}
	app.RoundModule = roundModule

	return nil
}

// AccountModules wires the user and auth modules. Auth routes are mounted
// only when the app has a router.
func (app *App) AccountModules(ctx context.Context) (*user.Module, *auth.Module) {
	metrics := usermetrics.NewPrometheus(app.Observability.Registry.Prometheus)

	app.UserModule = user.NewModule(ctx, app.Config, app.Observability, app.DB, metrics)
	app.AuthModule = auth.NewModule(
		ctx,
		app.Config,
		app.Observability,
		app.UserModule.GetService(),
		app.UserModule.GetRepository(),
		metrics,
		app.Router,
	)
	return app.UserModule, app.AuthModule
}

// NewRouter builds the root router with the endpoints that need no module.
func NewRouter(cfg *config.Config, obs observability.Observability) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("healthy"))
	})
	r.Handle("/metrics", obs.MetricsHandler())

	return r
}

// Run serves HTTP and processes background jobs until ctx is cancelled, then
// shuts everything down.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	if err := app.RoundModule.Start(ctx); err != nil {
		return err
	}

	if err := roundsubscribers.SubscribeToCompletions(ctx, app.EventBus, logger, roundsubscribers.LogCompletion(logger)); err != nil {
		logger.WarnContext(ctx, "Round completion subscriber not started", attr.Error(err))
	}

	app.Observability.StartMetricsServer()

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", slog.String("address", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	if err := app.RoundModule.Close(shutdownCtx); err != nil {
		logger.Error("Round module shutdown failed", attr.Error(err))
	}
	if err := app.Observability.Shutdown(shutdownCtx); err != nil {
		logger.Error("Observability shutdown failed", attr.Error(err))
	}

	return runErr
}

// Close releases the event bus and database connections.
func (app *App) Close() {
	logger := app.Observability.Provider.Logger
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", attr.Error(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database", attr.Error(err))
		}
	}
}
