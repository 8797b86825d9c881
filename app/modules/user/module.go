package user

import (
	"context"

	userservice "github.com/Black-And-White-Club/guss-backend/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability"
	usermetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/user"
	"github.com/Black-And-White-Club/guss-backend/config"
	"github.com/uptrace/bun"
)

// Module represents the user module. It has no routes of its own; accounts
// are created through the auth module.
type Module struct {
	service    userservice.Service
	repository userdb.Repository
}

// NewModule creates a new user module.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	metrics usermetrics.UserMetrics,
) *Module {
	obs.Provider.Logger.InfoContext(ctx, "Initializing user module")

	repo := userdb.NewRepository(db)
	service := userservice.NewUserService(
		repo,
		obs.Provider.Logger,
		metrics,
		obs.Registry.Tracer,
		db,
		cfg.Game.ZeroScoreUsername,
	)

	return &Module{
		service:    service,
		repository: repo,
	}
}

// GetService returns the user service for use by other modules.
func (m *Module) GetService() userservice.Service {
	return m.service
}

// GetRepository returns the user repository for modules that read users
// inside their own transactions.
func (m *Module) GetRepository() userdb.Repository {
	return m.repository
}
