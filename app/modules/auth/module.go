package auth

import (
	"context"
	"net/http"

	authservice "github.com/Black-And-White-Club/guss-backend/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/jwt"
	authrouter "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/router"
	userservice "github.com/Black-And-White-Club/guss-backend/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability"
	usermetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/user"
	"github.com/Black-And-White-Club/guss-backend/config"
	"github.com/go-chi/chi/v5"
)

// Module represents the auth module.
type Module struct {
	service  authservice.Service
	handlers *authhandlers.AuthHandlers
	router   *authrouter.Router
}

// NewModule creates a new auth module and mounts its routes on httpRouter.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	users userservice.Service,
	userRepo userdb.Repository,
	metrics usermetrics.UserMetrics,
	httpRouter chi.Router,
) *Module {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret)

	service := authservice.NewService(
		jwtProvider,
		users,
		userRepo,
		authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
		logger,
		metrics,
		tracer,
	)

	// Secure cookies everywhere except local development
	secureCookies := cfg.Observability.Environment != "development"

	handlers := authhandlers.NewAuthHandlers(service, logger, tracer, secureCookies, cfg.JWT.DefaultTTL)
	router := authrouter.NewRouter(handlers, service)

	if httpRouter != nil {
		router.Mount(httpRouter)
	}

	return &Module{
		service:  service,
		handlers: handlers,
		router:   router,
	}
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}

// RequireAuth is the session middleware other modules guard their routes with.
func (m *Module) RequireAuth() func(http.Handler) http.Handler {
	return authhandlers.RequireAuth(m.service)
}
