package testutils

import (
	"context"
	"fmt"
	"time"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/guss-backend/app/modules/user/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Username returns a random valid username.
func (g *TestDataGenerator) Username() string {
	return fmt.Sprintf("%s_%d", g.faker.Username(), g.faker.IntRange(1000, 9999))
}

// CreateUser stores a user with the given role and a throwaway password hash.
func (g *TestDataGenerator) CreateUser(ctx context.Context, db *bun.DB, role userdomain.Role) (*userdb.User, error) {
	username := g.Username()
	if role == userdomain.RoleAdmin {
		username = "admin_" + username
	}
	if len(username) > userdomain.MaxUsernameLength {
		username = username[:userdomain.MaxUsernameLength]
	}

	user := &userdb.User{
		Username:     username,
		PasswordHash: g.faker.Password(true, true, true, false, false, 20),
		Role:         role,
	}
	if err := userdb.NewRepository(db).Create(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to create %s user: %w", role, err)
	}
	return user, nil
}
