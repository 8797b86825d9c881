package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetByID retrieves a user by primary key.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by exact username.
func (r *Impl) GetByUsername(ctx context.Context, db bun.IDB, username string) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// Create inserts user and fills in the generated id and timestamp.
func (r *Impl) Create(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	_, err := db.NewInsert().
		Model(user).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Count returns the number of registered users.
func (r *Impl) Count(ctx context.Context, db bun.IDB) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().Model((*User)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
