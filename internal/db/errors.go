package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Typed store errors. Repository methods translate driver errors into these
// so callers never inspect driver messages.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidSession = errors.New("invalid session")
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isSerializationFailure(err error) bool {
	return pgErrorCode(err) == pgSerializationFailure
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
