package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/guss-backend/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// Register creates an account and opens a session for it.
	Register(ctx context.Context, username, password string) (*Session, error)

	// Login checks the credentials and opens a session.
	Login(ctx context.Context, username, password string) (*Session, error)

	// Authenticate verifies a session token.
	Authenticate(ctx context.Context, token string) (*authdomain.Identity, error)
}

// Session is a freshly issued access token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *userdomain.User
}
