package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/guss-backend/db/bundb"
	"github.com/Black-And-White-Club/guss-backend/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds all resources needed for integration testing
type TestEnvironment struct {
	Ctx         context.Context
	Cancel      context.CancelFunc
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
	DSN         string
}

var (
	sharedEnv     *TestEnvironment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

// GetTestEnv returns the package-wide environment, creating it on first use.
// Tests are skipped in -short mode or when no container runtime is available.
func GetTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	sharedEnvOnce.Do(func() {
		// testcontainers panics on some hosts without a Docker socket.
		defer func() {
			if r := recover(); r != nil {
				sharedEnvErr = fmt.Errorf("container runtime: %v", r)
			}
		}()
		sharedEnv, sharedEnvErr = NewTestEnvironment(context.Background())
	})
	if sharedEnvErr != nil {
		t.Skipf("integration environment unavailable: %v", sharedEnvErr)
	}

	if err := CleanupDatabase(sharedEnv.Ctx, sharedEnv.DB); err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
	return sharedEnv
}

// TeardownTestEnv releases the shared environment. Call it from TestMain.
func TeardownTestEnv() {
	if sharedEnv != nil {
		sharedEnv.Cleanup()
	}
}

// NewTestEnvironment starts Postgres and applies every migration.
func NewTestEnvironment(parent context.Context) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(parent)

	setupCtx, setupCancel := context.WithTimeout(ctx, 2*time.Minute)
	defer setupCancel()

	pgContainer, dsn, err := containers.SetupPostgresContainer(setupCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	db, err := bundb.Open(setupCtx, dsn)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	env := &TestEnvironment{
		Ctx:         ctx,
		Cancel:      cancel,
		PgContainer: pgContainer,
		DB:          db,
		DSN:         dsn,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := bundb.Migrate(setupCtx, db, logger); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := bundb.MigrateRiver(setupCtx, dsn); err != nil {
		env.Cleanup()
		return nil, err
	}

	return env, nil
}

// Cleanup closes the database and terminates the container.
func (env *TestEnvironment) Cleanup() {
	if env.DB != nil {
		if err := env.DB.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(context.Background()); err != nil {
			log.Printf("failed to terminate postgres container: %v", err)
		}
	}
	env.Cancel()
}

// Known application tables, children first.
var appTables = []string{"taps", "rounds", "users"}

// CleanupDatabase truncates all tables in the database to ensure a clean state
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	if _, err := db.ExecContext(ctx, "DELETE FROM river_job"); err != nil {
		if !strings.Contains(err.Error(), "does not exist") {
			return fmt.Errorf("failed to cleanup river jobs: %w", err)
		}
	}
	return nil
}

// WaitFor repeatedly calls a check function until it returns nil or a timeout occurs.
func WaitFor(timeout, interval time.Duration, check func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := check(); err == nil {
				return nil
			}
			return fmt.Errorf("timed out waiting: %w", ctx.Err())
		case <-ticker.C:
			if err := check(); err == nil {
				return nil
			}
		}
	}
}
