package app

import (
	"context"
	"fmt"
	"log/slog"

	authservice "github.com/Black-And-White-Club/guss-backend/app/modules/auth/application"
	"github.com/Black-And-White-Club/guss-backend/app/observability/attr"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

// UserCounter reports how many accounts exist.
type UserCounter interface {
	CountUsers(ctx context.Context) (int, error)
}

// SeedUsernames returns the demo accounts: one admin, one player and the
// reserved zero-score user.
func SeedUsernames(zeroScoreUsername string) []string {
	return []string{"admin", "player1", zeroScoreUsername}
}

// Seed registers the demo accounts when no user exists yet. It reports how
// many accounts it created.
func Seed(ctx context.Context, users UserCounter, auth authservice.Service, usernames []string, logger *slog.Logger) (int, error) {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		logger.InfoContext(ctx, "Users already exist, skipping seed", attr.Int("user_count", count))
		return 0, nil
	}

	for i, username := range usernames {
		session, err := auth.Register(ctx, username, SeedPassword)
		if err != nil {
			return i, fmt.Errorf("failed to seed user %q: %w", username, err)
		}
		logger.InfoContext(ctx, "Seeded user",
			attr.String("username", session.User.Username),
			attr.String("role", session.User.Role.String()),
		)
	}
	return len(usernames), nil
}
