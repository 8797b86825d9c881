package roundmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rounds and taps tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS rounds (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					start_time TIMESTAMPTZ NOT NULL,
					end_time TIMESTAMPTZ NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT rounds_window_check CHECK (start_time < end_time)
				);
			`)
			if err != nil {
				return fmt.Errorf("failed to create rounds table: %w", err)
			}

			_, err = tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS taps (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					round_id UUID NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
					score INTEGER NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
					CONSTRAINT taps_score_check CHECK (score IN (1, 10))
				);
			`)
			if err != nil {
				return fmt.Errorf("failed to create taps table: %w", err)
			}

			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds (created_at DESC);`,
				`CREATE INDEX IF NOT EXISTS idx_taps_round_user ON taps (round_id, user_id);`,
				`CREATE INDEX IF NOT EXISTS idx_taps_round_created ON taps (round_id, created_at, id);`,
			}
			for _, stmt := range indexes {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to create index: %w", err)
				}
			}

			fmt.Println("Rounds and taps tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rounds and taps tables...")

		for _, table := range []string{"taps", "rounds"} {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return fmt.Errorf("failed to drop %s table: %w", table, err)
			}
		}

		fmt.Println("Rounds and taps tables dropped successfully!")
		return nil
	})
}
