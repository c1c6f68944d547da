package httperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ValidationError is malformed client input.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string { return e.Code + ": " + e.Message }

// NotFoundError is a referenced id that does not exist.
type NotFoundError struct {
	Code    string
	Message string
}

func (e NotFoundError) Error() string { return e.Code + ": " + e.Message }

// ConflictError is a write that would break slot or uniqueness rules.
type ConflictError struct {
	Code    string
	Message string
}

func (e ConflictError) Error() string { return e.Code + ": " + e.Message }

// AuthError is a rejected login or missing session. Message is shown to the user.
type AuthError struct {
	Code    string
	Message string
}

func (e AuthError) Error() string { return e.Code + ": " + e.Message }

func ErrValidation(code, message string) error {
	return ValidationError{Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return NotFoundError{Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return ConflictError{Code: code, Message: message}
}

func ErrAuth(code, message string) error {
	return AuthError{Code: code, Message: message}
}

// Is reports whether err carries the given code in any of the typed errors.
func Is(err error, code string) bool {
	var (
		ve ValidationError
		ne NotFoundError
		ce ConflictError
		ae AuthError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Code == code
	case errors.As(err, &ne):
		return ne.Code == code
	case errors.As(err, &ce):
		return ce.Code == code
	case errors.As(err, &ae):
		return ae.Code == code
	}
	return false
}

func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation recognises duplicate-key failures from Postgres (23505)
// and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
