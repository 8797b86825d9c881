package userservice

import (
	"context"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/google/uuid"
)

// Service defines the user account operations.
type Service interface {
	// CreateUser validates the username, assigns the role by naming
	// convention and stores the account with an already hashed password.
	CreateUser(ctx context.Context, username, passwordHash string) (*userdomain.User, error)

	GetUser(ctx context.Context, id uuid.UUID) (*userdomain.User, error)

	GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error)

	// CountUsers reports how many accounts exist.
	CountUsers(ctx context.Context) (int, error)
}
