package round

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	roundhandlers "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/handlers"
	roundqueue "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/queue"
	rounddb "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories"
	roundrouter "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/router"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/guss-backend/app/observability"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
	roundmetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/round"
	"github.com/Black-And-White-Club/guss-backend/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the round module.
type Module struct {
	service roundservice.Service
	queue   *roundqueue.Service
	router  *roundrouter.Router
	logger  *slog.Logger
}

// NewModule creates the round module, starts its completion queue when
// enabled and mounts its routes on httpRouter.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	userRepo userdb.Repository,
	publisher roundservice.Publisher,
	metrics roundmetrics.RoundMetrics,
	requireAuth func(http.Handler) http.Handler,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "Initializing round module",
		attr.Duration("round_duration", cfg.Game.RoundDuration),
		attr.Duration("cooldown_duration", cfg.Game.CooldownDuration),
	)

	service := roundservice.NewRoundService(
		rounddb.NewRepository(db),
		userRepo,
		rounddomain.SystemClock{},
		roundservice.Config{
			RoundDuration:    cfg.Game.RoundDuration,
			CooldownDuration: cfg.Game.CooldownDuration,
		},
		publisher,
		logger,
		metrics,
		tracer,
		db,
	)

	module := &Module{
		service: service,
		logger:  logger,
	}

	if cfg.Queue.Enabled {
		queue, err := roundqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, metrics, service)
		if err != nil {
			return nil, fmt.Errorf("failed to create round queue: %w", err)
		}
		service.SetCompletionScheduler(queue)
		module.queue = queue
	} else {
		logger.WarnContext(ctx, "Round queue disabled, completions will not be announced")
	}

	handlers := roundhandlers.NewRoundHandlers(service, logger, tracer)
	module.router = roundrouter.NewRouter(handlers, requireAuth)
	if httpRouter != nil {
		module.router.Mount(httpRouter)
	}

	return module, nil
}

// GetService returns the round service for use by other modules.
func (m *Module) GetService() roundservice.Service {
	return m.service
}

// Start begins processing completion jobs.
func (m *Module) Start(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	if err := m.queue.Start(ctx); err != nil {
		return fmt.Errorf("failed to start round queue: %w", err)
	}
	return nil
}

// Close stops the queue, letting in-flight jobs finish until ctx expires.
func (m *Module) Close(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	if err := m.queue.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop round queue: %w", err)
	}
	m.logger.InfoContext(ctx, "Round module stopped")
	return nil
}
