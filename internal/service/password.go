package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// ErrHashMalformed reports a stored hash that bcrypt cannot parse.
var ErrHashMalformed = errors.New("malformed password hash")

// PasswordHasher wraps bcrypt. Hashing is CPU bound, so concurrent calls are
// capped by a semaphore that callers wait on with their request context.
type PasswordHasher struct {
	cost  int
	slots *semaphore.Weighted
}

// NewPasswordHasher uses bcrypt.DefaultCost when cost is 0 and GOMAXPROCS
// slots when concurrency is not positive.
func NewPasswordHasher(cost, concurrency int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{cost: cost, slots: semaphore.NewWeighted(int64(concurrency))}
}

func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.slots.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password longer than 72 bytes", ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// only an unparseable hash returns an error.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.slots.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrHashMalformed, err)
	}
}
