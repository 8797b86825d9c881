package userdb

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	GetByIDFn       func(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error)
	GetByUsernameFn func(ctx context.Context, db bun.IDB, username string) (*User, error)
	CreateFn        func(ctx context.Context, db bun.IDB, user *User) error
	CountFn         func(ctx context.Context, db bun.IDB) (int, error)
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

func (f *FakeRepository) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error) {
	f.record("GetByID")
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetByUsername(ctx context.Context, db bun.IDB, username string) (*User, error) {
	f.record("GetByUsername")
	if f.GetByUsernameFn != nil {
		return f.GetByUsernameFn(ctx, db, username)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) Create(ctx context.Context, db bun.IDB, user *User) error {
	f.record("Create")
	if f.CreateFn != nil {
		return f.CreateFn(ctx, db, user)
	}
	return nil
}

func (f *FakeRepository) Count(ctx context.Context, db bun.IDB) (int, error) {
	f.record("Count")
	if f.CountFn != nil {
		return f.CountFn(ctx, db)
	}
	return 0, nil
}

var _ Repository = (*FakeRepository)(nil)
