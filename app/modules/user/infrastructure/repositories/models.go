package userdb

import (
	"time"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Username      string          `bun:"username,unique,notnull" json:"username"`
	PasswordHash  string          `bun:"password_hash,notnull" json:"-"`
	Role          userdomain.Role `bun:"role,notnull,default:'PLAYER'" json:"role"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ToDomain strips persistence-only fields.
func (u *User) ToDomain() *userdomain.User {
	return &userdomain.User{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
