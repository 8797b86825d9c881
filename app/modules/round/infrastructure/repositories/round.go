package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new round repository.
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

// GetRoundByID retrieves a round by primary key.
func (r *Impl) GetRoundByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}

// CreateRound inserts a round.
func (r *Impl) CreateRound(ctx context.Context, db bun.IDB, round *Round) error {
	db = r.resolveDB(db)
	if round.ID == uuid.Nil {
		round.ID = uuid.New()
	}
	_, err := db.NewInsert().
		Model(round).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}
	return nil
}

// ListRounds returns every round ordered by creation time, newest first.
func (r *Impl) ListRounds(ctx context.Context, db bun.IDB) ([]*Round, error) {
	db = r.resolveDB(db)
	var rounds []*Round
	err := db.NewSelect().
		Model(&rounds).
		Order("r.created_at DESC", "r.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

// LockUserRound acquires pg_advisory_xact_lock keyed by the (user, round)
// pair. The lock is released when the surrounding transaction ends.
func (r *Impl) LockUserRound(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) error {
	db = r.resolveDB(db)
	key := userID.String() + ":" + roundID.String()
	if _, err := db.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key); err != nil {
		return fmt.Errorf("failed to lock user round: %w", err)
	}
	return nil
}

// CountTaps returns how many taps the user has recorded in the round.
func (r *Impl) CountTaps(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*Tap)(nil)).
		Where("t.user_id = ?", userID).
		Where("t.round_id = ?", roundID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count taps: %w", err)
	}
	return n, nil
}

// CreateTap inserts a tap and fills in the database-assigned timestamp.
func (r *Impl) CreateTap(ctx context.Context, db bun.IDB, tap *Tap) error {
	db = r.resolveDB(db)
	if tap.ID == uuid.Nil {
		tap.ID = uuid.New()
	}
	_, err := db.NewInsert().
		Model(tap).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create tap: %w", err)
	}
	return nil
}

// SumScore returns the user's total score in the round, zero without taps.
func (r *Impl) SumScore(ctx context.Context, db bun.IDB, userID, roundID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	var sum int
	err := db.NewSelect().
		Model((*Tap)(nil)).
		ColumnExpr("COALESCE(SUM(t.score), 0)").
		Where("t.user_id = ?", userID).
		Where("t.round_id = ?", roundID).
		Scan(ctx, &sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum score: %w", err)
	}
	return sum, nil
}

// GetTapsForRound loads all taps of a round joined with usernames.
func (r *Impl) GetTapsForRound(ctx context.Context, db bun.IDB, roundID uuid.UUID) ([]rounddomain.TapRecord, error) {
	db = r.resolveDB(db)
	var rows []TapWithUsername
	err := db.NewSelect().
		Model(&rows).
		ColumnExpr("t.*").
		ColumnExpr("u.username AS username").
		Join("JOIN users AS u ON u.id = t.user_id").
		Where("t.round_id = ?", roundID).
		Order("t.created_at ASC", "t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get taps for round: %w", err)
	}

	taps := make([]rounddomain.TapRecord, 0, len(rows))
	for i := range rows {
		taps = append(taps, rows[i].ToDomain())
	}
	return taps, nil
}
