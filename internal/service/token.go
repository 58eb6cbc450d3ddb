package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rise-labs/shelf-backend/internal/model"
)

// TokenIssuer turns a verified identity into a bearer token.
type TokenIssuer interface {
	Issue(ctx context.Context, identifier string) (token string, expiresAt time.Time, err error)
}

// TokenVerifier recovers the claims of a bearer token. Failures are
// ErrTokenExpired, ErrTokenInvalid, or ErrUpstream when the check itself
// could not be carried out.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*model.Claims, error)
}

// TokenRevoker ends a token before its natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, claims *model.Claims) error
}

type tokenClaims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 JWTs locally. It holds no state
// besides the secret, so every instance of the service accepts every token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive", ErrMisconfigured)
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// SetClock replaces the time source used to stamp and check tokens.
func (m *TokenManager) SetClock(now func() time.Time) {
	m.now = now
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(_ context.Context, identifier string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identifier,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature before the expiry, so a forged token whose
// exp has passed is still reported as invalid.
func (m *TokenManager) Verify(_ context.Context, tokenStr string) (*model.Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	out := &model.Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenID:   claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
