package userdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for user data.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrUsernameTaken: Create hit the unique username constraint
//   - other errors: infrastructure failures
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, db bun.IDB, username string) (*User, error)
	Create(ctx context.Context, db bun.IDB, user *User) error
	Count(ctx context.Context, db bun.IDB) (int, error)
}
