package service

import (
	"context"
	"time"

	"github.com/rise-labs/shelf-backend/internal/model"
)

type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// DenylistVerifier layers revocation over a stateless verifier. Tokens are
// keyed by their jti; tokens without one pass through unchanged.
type DenylistVerifier struct {
	next TokenVerifier
	list Denylist
}

func NewDenylistVerifier(next TokenVerifier, list Denylist) *DenylistVerifier {
	return &DenylistVerifier{next: next, list: list}
}

func (v *DenylistVerifier) Verify(ctx context.Context, token string) (*model.Claims, error) {
	claims, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if claims.TokenID == "" {
		return claims, nil
	}

	revoked, err := v.list.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, upstream(err)
	}
	if revoked {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (v *DenylistVerifier) Revoke(ctx context.Context, _ string, claims *model.Claims) error {
	if claims == nil || claims.TokenID == "" {
		return ErrTokenInvalid
	}
	if err := v.list.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return upstream(err)
	}
	return nil
}
