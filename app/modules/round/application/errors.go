package roundservice

import "errors"

// Domain errors for the round service. Handlers map them to client errors;
// anything else is an infrastructure failure.
var (
	// ErrRoundNotFound indicates a round does not exist.
	ErrRoundNotFound = errors.New("round not found")

	// ErrUserNotFound indicates the tapping user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrRoundNotActive indicates a tap arrived outside the active window.
	ErrRoundNotActive = errors.New("round is not active")
)
