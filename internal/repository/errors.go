// Package repository provides the data access layer backed by Postgres.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors surfaced to the handler layer. Callers check them with
// errors.Is and map them to HTTP statuses.
var (
	// ErrNotFound covers both a missing record and an ownership mismatch so
	// the caller cannot distinguish other users' records from nonexistent ones.
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

const uniqueViolationCode = "23505"

// mapUniqueViolation converts a Postgres unique-constraint violation into the
// matching duplicate error. The constraint rejection is what makes concurrent
// registrations safe; the handler-level existence checks only pick the message.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}
