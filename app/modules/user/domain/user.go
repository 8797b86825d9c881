package userdomain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 6
)

var (
	// ErrInvalidUsername is returned for usernames outside the allowed length.
	ErrInvalidUsername = errors.New("username must be between 3 and 32 characters")

	// ErrInvalidPassword is returned for passwords that are too short.
	ErrInvalidPassword = errors.New("password must be at least 6 characters")
)

// User is the public view of an account. The credential hash never leaves
// the repository layer through this type.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeUsername trims surrounding whitespace and validates the length.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return "", ErrInvalidUsername
	}
	return username, nil
}

// ValidatePassword checks the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
