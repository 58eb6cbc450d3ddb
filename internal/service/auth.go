package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rise-labs/shelf-backend/internal/db"
	"github.com/rise-labs/shelf-backend/internal/model"
)

const (
	maxIdentifierLength = 254
	maxPasswordBytes    = 72
)

type UserRepo interface {
	CreateUser(ctx context.Context, identifier, passwordHash string) (*model.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error)
}

type AuthService struct {
	repo    UserRepo
	hasher  *PasswordHasher
	issuer  TokenIssuer
	revoker TokenRevoker
	ttl     time.Duration

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthService wires the credential flow. revoker may be nil, in which
// case Logout is unavailable.
func NewAuthService(repo UserRepo, hasher *PasswordHasher, issuer TokenIssuer, revoker TokenRevoker, ttl time.Duration) *AuthService {
	return &AuthService{
		repo:    repo,
		hasher:  hasher,
		issuer:  issuer,
		revoker: revoker,
		ttl:     ttl,
	}
}

func (s *AuthService) CanRevoke() bool {
	return s.revoker != nil
}

// Register stores a salted hash of the password under identifier.
func (s *AuthService) Register(ctx context.Context, creds model.Credentials) (*model.User, error) {
	identifier, err := validateCredentials(creds)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, creds.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, identifier, hash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, upstream(err)
	}
	return user, nil
}

// Login verifies the password and issues a token. An unknown identifier and
// a wrong password both yield ErrInvalidCredentials, and both pay for one
// bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (string, int64, error) {
	identifier, err := validateCredentials(creds)
	if err != nil {
		return "", 0, err
	}

	user, err := s.repo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			dummy, err := s.fallbackHash(ctx)
			if err != nil {
				return "", 0, err
			}
			_, _ = s.hasher.Verify(ctx, creds.Password, dummy)
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, upstream(err)
	}

	ok, err := s.hasher.Verify(ctx, creds.Password, user.PasswordHash)
	if err != nil {
		return "", 0, err
	}
	if !ok {
		return "", 0, ErrInvalidCredentials
	}

	token, _, err := s.issuer.Issue(ctx, user.Identifier)
	if err != nil {
		return "", 0, err
	}
	return token, expiresInHours(s.ttl), nil
}

func (s *AuthService) Logout(ctx context.Context, token string, claims *model.Claims) error {
	if s.revoker == nil {
		return fmt.Errorf("%w: revocation is not configured", ErrMisconfigured)
	}
	return s.revoker.Revoke(ctx, token, claims)
}

// fallbackHash lazily computes the hash compared against for unknown
// identifiers. A failed attempt is retried on the next call.
func (s *AuthService) fallbackHash(ctx context.Context) (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyHash != "" {
		return s.dummyHash, nil
	}
	hash, err := s.hasher.Hash(context.WithoutCancel(ctx), "shelf-unknown-identifier")
	if err != nil {
		return "", err
	}
	s.dummyHash = hash
	return hash, nil
}

// expiresInHours rounds ttl up to whole hours so a partial hour is never
// reported as zero.
func expiresInHours(ttl time.Duration) int64 {
	return int64((ttl + time.Hour - 1) / time.Hour)
}

func validateCredentials(creds model.Credentials) (string, error) {
	identifier := strings.TrimSpace(creds.Identifier)
	if identifier == "" || len(identifier) > maxIdentifierLength {
		return "", ErrInvalidInput
	}
	if creds.Password == "" || len(creds.Password) > maxPasswordBytes {
		return "", ErrInvalidInput
	}
	return identifier, nil
}
