package authdomain

import (
	"context"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/google/uuid"
)

// Identity is a verified caller.
type Identity struct {
	UserID   uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	Role     userdomain.Role `json:"role"`
}

// IsAdmin reports whether the caller may manage rounds.
func (i Identity) IsAdmin() bool {
	return i.Role == userdomain.RoleAdmin
}

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
