// Package bundb opens the Postgres connection and owns the migration order.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	roundmigrations "github.com/Black-And-White-Club/guss-backend/app/modules/round/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations pairs a module name with its migrations.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules lists every module's migrations in dependency order. Taps reference
// users, so user must come before round.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{Name: "user", Migrations: usermigrations.Migrations},
		{Name: "round", Migrations: roundmigrations.Migrations},
	}
}

// Open connects to Postgres through pgdriver and verifies the connection.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// Migrate creates the migration tables and applies every pending module
// migration in order.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	modules := Modules()

	// All modules share one bun_migrations table.
	if err := migrate.NewMigrator(db, modules[0].Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, mod := range modules {
		group, err := migrate.NewMigrator(db, mod.Migrations).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", slog.String("module", mod.Name))
			continue
		}
		logger.InfoContext(ctx, "Migrated module",
			slog.String("module", mod.Name),
			slog.String("group", group.String()),
		)
	}
	return nil
}

// Rollback undoes the last migration group of every module, in reverse order.
func Rollback(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	modules := Modules()
	for i := len(modules) - 1; i >= 0; i-- {
		mod := modules[i]
		group, err := migrate.NewMigrator(db, mod.Migrations).Rollback(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back %s migrations: %w", mod.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No groups to roll back", slog.String("module", mod.Name))
			continue
		}
		logger.InfoContext(ctx, "Rolled back module",
			slog.String("module", mod.Name),
			slog.String("group", group.String()),
		)
	}
	return nil
}

// MigrateRiver applies the River queue schema.
func MigrateRiver(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}

	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}
