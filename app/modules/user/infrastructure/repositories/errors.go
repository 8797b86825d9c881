package userdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Sentinel errors for the user repository layer.
var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user record not found")

	// ErrUsernameTaken indicates the unique username constraint rejected an insert.
	ErrUsernameTaken = errors.New("username already taken")
)

const uniqueViolation = "23505"

// isUniqueViolation recognises unique violations from both pgdriver and pgx.
func isUniqueViolation(err error) bool {
	var pgdErr pgdriver.Error
	if errors.As(err, &pgdErr) {
		return pgdErr.Field('C') == uniqueViolation
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolation
	}
	return false
}
