package rounddb

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for rounds and taps.
//
// Every method takes an optional db handle so callers can compose several
// calls into one transaction; nil means the repository's own connection.
//
// Error semantics:
//   - ErrNotFound: GetRoundByID found no row
//   - other errors: infrastructure failures
type Repository interface {
	// --- Rounds ---
	GetRoundByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Round, error)
	CreateRound(ctx context.Context, db bun.IDB, round *Round) error
	// ListRounds returns every round, newest first.
	ListRounds(ctx context.Context, db bun.IDB) ([]*Round, error)

	// --- Taps ---
	// LockUserRound takes a transaction-scoped lock on (user, round). It only
	// serializes anything when db is a transaction.
	LockUserRound(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) error
	CountTaps(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error)
	CreateTap(ctx context.Context, db bun.IDB, tap *Tap) error
	SumScore(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error)
	// GetTapsForRound returns all taps of a round in (created_at, id) order.
	GetTapsForRound(ctx context.Context, db bun.IDB, roundID uuid.UUID) ([]rounddomain.TapRecord, error)
}
