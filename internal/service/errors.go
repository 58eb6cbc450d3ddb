package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingAuthHeader  = errors.New("missing token")
	ErrMalformedHeader    = errors.New("malformed header")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrUpstream           = errors.New("data store error")
	ErrMisconfigured      = errors.New("auth config invalid")
)

// upstream marks err as an unclassified data store failure while keeping it
// in the chain for logging.
func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
