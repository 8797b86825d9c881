package authdomain

import (
	"time"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/google/uuid"
)

// Claims represents the domain model for authentication claims.
type Claims struct {
	UserID    uuid.UUID
	Username  string
	Role      userdomain.Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Identity returns the verified caller described by the claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:   c.UserID,
		Username: c.Username,
		Role:     c.Role,
	}
}
