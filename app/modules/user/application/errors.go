package userservice

import "errors"

// Domain errors for the user service.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates another account already uses the username.
	ErrUsernameTaken = errors.New("username already taken")
)
