package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/model"
)

// SessionStore is the data store's own session mechanism.
type SessionStore interface {
	CreateSession(ctx context.Context, identifier string, ttl time.Duration) (*model.Session, error)
	Authenticate(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// SessionAuth delegates token handling to the store: tokens are opaque to
// this service and only the store decides whether one is still valid.
type SessionAuth struct {
	store SessionStore
	ttl   time.Duration
}

func NewSessionAuth(store SessionStore, ttl time.Duration) (*SessionAuth, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: session ttl must be positive", ErrMisconfigured)
	}
	return &SessionAuth{store: store, ttl: ttl}, nil
}

func (s *SessionAuth) TTL() time.Duration {
	return s.ttl
}

func (s *SessionAuth) Issue(ctx context.Context, identifier string) (string, time.Time, error) {
	session, err := s.store.CreateSession(ctx, identifier, s.ttl)
	if err != nil {
		return "", time.Time{}, upstream(err)
	}
	return session.Token, session.ExpiresAt, nil
}

func (s *SessionAuth) Verify(ctx context.Context, token string) (*model.Claims, error) {
	session, err := s.store.Authenticate(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrSessionExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, db.ErrInvalidSession):
			return nil, ErrTokenInvalid
		default:
			return nil, upstream(err)
		}
	}
	return &model.Claims{
		Subject:   session.Identifier,
		IssuedAt:  session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *SessionAuth) Revoke(ctx context.Context, token string, _ *model.Claims) error {
	if err := s.store.DeleteSession(ctx, token); err != nil {
		return upstream(err)
	}
	return nil
}
