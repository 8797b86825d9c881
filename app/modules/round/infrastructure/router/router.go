package roundrouter

import (
	"net/http"

	authhandlers "github.com/Black-And-White-Club/guss-backend/app/modules/auth/infrastructure/handlers"
	roundhandlers "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/handlers"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/go-chi/chi/v5"
)

// BasePath is where the round routes are mounted.
const BasePath = "/rounds"

// Router mounts the round HTTP endpoints.
type Router struct {
	handlers    *roundhandlers.RoundHandlers
	requireAuth func(http.Handler) http.Handler
}

// NewRouter creates a new round router. requireAuth guards every route.
func NewRouter(handlers *roundhandlers.RoundHandlers, requireAuth func(http.Handler) http.Handler) *Router {
	return &Router{
		handlers:    handlers,
		requireAuth: requireAuth,
	}
}

// Mount registers the routes on httpRouter.
func (r *Router) Mount(httpRouter chi.Router) {
	httpRouter.Route(BasePath, func(cr chi.Router) {
		cr.Use(r.requireAuth)

		cr.Get("/", r.handlers.HandleListRounds)
		cr.With(authhandlers.RequireRole(userdomain.RoleAdmin)).Post("/", r.handlers.HandleCreateRound)

		cr.Route("/{id}", func(cr chi.Router) {
			cr.Get("/", r.handlers.HandleGetRound)
			cr.Post("/tap", r.handlers.HandleTap)
			cr.Get("/results.xlsx", r.handlers.HandleResultsXLSX)
			cr.Get("/chart.png", r.handlers.HandleChartPNG)
		})
	})
}
