package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS pgcrypto;`); err != nil {
				return fmt.Errorf("failed to enable pgcrypto: %w", err)
			}

			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS users (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					username TEXT NOT NULL,
					password_hash TEXT NOT NULL,
					role TEXT NOT NULL DEFAULT 'PLAYER',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT users_username_key UNIQUE (username),
					CONSTRAINT users_role_check CHECK (role IN ('PLAYER', 'ADMIN', 'ZERO_SCORE'))
				);
			`)
			if err != nil {
				return fmt.Errorf("failed to create users table: %w", err)
			}

			fmt.Println("Users table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping users table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS users;`); err != nil {
			return fmt.Errorf("failed to drop users table: %w", err)
		}

		fmt.Println("Users table dropped successfully!")
		return nil
	})
}
