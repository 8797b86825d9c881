package rounddb

import (
	"context"
	"sync"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	GetRoundByIDFn    func(ctx context.Context, db bun.IDB, id uuid.UUID) (*Round, error)
	CreateRoundFn     func(ctx context.Context, db bun.IDB, round *Round) error
	ListRoundsFn      func(ctx context.Context, db bun.IDB) ([]*Round, error)
	LockUserRoundFn   func(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) error
	CountTapsFn       func(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error)
	CreateTapFn       func(ctx context.Context, db bun.IDB, tap *Tap) error
	SumScoreFn        func(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error)
	GetTapsForRoundFn func(ctx context.Context, db bun.IDB, roundID uuid.UUID) ([]rounddomain.TapRecord, error)
}

func (f *FakeRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the methods called, in order.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) GetRoundByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Round, error) {
	f.record("GetRoundByID")
	if f.GetRoundByIDFn != nil {
		return f.GetRoundByIDFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) CreateRound(ctx context.Context, db bun.IDB, round *Round) error {
	f.record("CreateRound")
	if f.CreateRoundFn != nil {
		return f.CreateRoundFn(ctx, db, round)
	}
	return nil
}

func (f *FakeRepository) ListRounds(ctx context.Context, db bun.IDB) ([]*Round, error) {
	f.record("ListRounds")
	if f.ListRoundsFn != nil {
		return f.ListRoundsFn(ctx, db)
	}
	return []*Round{}, nil
}

func (f *FakeRepository) LockUserRound(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) error {
	f.record("LockUserRound")
	if f.LockUserRoundFn != nil {
		return f.LockUserRoundFn(ctx, db, userID, roundID)
	}
	return nil
}

func (f *FakeRepository) CountTaps(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error) {
	f.record("CountTaps")
	if f.CountTapsFn != nil {
		return f.CountTapsFn(ctx, db, userID, roundID)
	}
	return 0, nil
}

func (f *FakeRepository) CreateTap(ctx context.Context, db bun.IDB, tap *Tap) error {
	f.record("CreateTap")
	if f.CreateTapFn != nil {
		return f.CreateTapFn(ctx, db, tap)
	}
	return nil
}

func (f *FakeRepository) SumScore(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error) {
	f.record("SumScore")
	if f.SumScoreFn != nil {
		return f.SumScoreFn(ctx, db, userID, roundID)
	}
	return 0, nil
}

func (f *FakeRepository) GetTapsForRound(ctx context.Context, db bun.IDB, roundID uuid.UUID) ([]rounddomain.TapRecord, error) {
	f.record("GetTapsForRound")
	if f.GetTapsForRoundFn != nil {
		return f.GetTapsForRoundFn(ctx, db, roundID)
	}
	return []rounddomain.TapRecord{}, nil
}

var _ Repository = (*FakeRepository)(nil)
