package authrouter

import (
	authservice "github.com/Black-And-White-Club/guss-backend/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

const (
	// BasePath is where the auth routes are mounted.
	BasePath = "/auth"

	// LoginRate and LoginBurst bound auth requests per client IP.
	LoginRate  = 5
	LoginBurst = 10
)

// Router mounts the auth HTTP endpoints.
type Router struct {
	handlers *authhandlers.AuthHandlers
	service  authservice.Service
	limiter  *authhandlers.IPRateLimiter
}

// NewRouter creates a new auth router.
func NewRouter(handlers *authhandlers.AuthHandlers, service authservice.Service) *Router {
	return &Router{
		handlers: handlers,
		service:  service,
		limiter:  authhandlers.NewIPRateLimiter(LoginRate, LoginBurst),
	}
}

// Mount registers the routes on httpRouter.
func (r *Router) Mount(httpRouter chi.Router) {
	httpRouter.Route(BasePath, func(cr chi.Router) {
		cr.Use(authhandlers.RateLimitMiddleware(r.limiter))

		// Public routes
		cr.Post("/register", r.handlers.HandleRegister)
		cr.Post("/login", r.handlers.HandleLogin)
		cr.Post("/logout", r.handlers.HandleLogout)

		// Protected routes
		cr.Group(func(cr chi.Router) {
			cr.Use(authhandlers.RequireAuth(r.service))
			cr.Get("/profile", r.handlers.HandleProfile)
		})
	})
}
