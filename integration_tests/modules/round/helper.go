package roundintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/guss-backend/app/eventbus"
	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	roundmetrics "github.com/Black-And-White-Club/guss-backend/app/observability/metrics/round"
	"github.com/Black-And-White-Club/guss-backend/integration_tests/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx     context.Context
	Env     *testutils.TestEnvironment
	BunDB   *bun.DB
	Repo    rounddb.Repository
	Clock   *rounddomain.FakeClock
	Bus     eventbus.EventBus
	Service *roundservice.RoundService
	Data    *testutils.TestDataGenerator
	Logger  *slog.Logger
}

// SetupTestRoundService builds a RoundService over the shared database with
// a fake clock frozen at testEpoch and an in-memory event bus.
func SetupTestRoundService(t *testing.T, cfg roundservice.Config) TestDeps {
	t.Helper()

	env := testutils.GetTestEnv(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := rounddomain.NewFakeClock(testEpoch)
	bus := eventbus.NewInMemory(logger)
	t.Cleanup(func() { _ = bus.Close() })

	repo := rounddb.NewRepository(env.DB)
	service := roundservice.NewRoundService(
		repo,
		userdb.NewRepository(env.DB),
		clock,
		cfg,
		bus,
		logger,
		roundmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		env.DB,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Env:     env,
		BunDB:   env.DB,
		Repo:    repo,
		Clock:   clock,
		Bus:     bus,
		Service: service,
		Data:    testutils.NewTestDataGenerator(42),
		Logger:  logger,
	}
}

func (d TestDeps) createUser(t *testing.T, role userdomain.Role) uuid.UUID {
	t.Helper()
	user, err := d.Data.CreateUser(d.Ctx, d.BunDB, role)
	require.NoError(t, err)
	return user.ID
}

// activeRound creates a round through the service and moves the clock into
// its active window.
func (d TestDeps) activeRound(t *testing.T) *rounddomain.Round {
	t.Helper()
	round, err := d.Service.CreateRound(d.Ctx)
	require.NoError(t, err)
	d.Clock.Set(round.StartTime)
	return round
}

func (d TestDeps) tapN(t *testing.T, roundID, userID uuid.UUID, n int) *roundservice.TapResult {
	t.Helper()
	var last *roundservice.TapResult
	for i := 0; i < n; i++ {
		res, err := d.Service.HandleTap(d.Ctx, roundID, userID)
		require.NoError(t, err)
		last = res
	}
	return last
}
