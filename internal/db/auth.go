package db

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rise-labs/shelf-backend/internal/model"
)

func (db *Postgres) CreateUser(ctx context.Context, identifier, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (identifier, password_hash, created_at)
		VALUES ($1, $2, NOW())
		RETURNING identifier, password_hash, created_at
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, identifier, passwordHash).Scan(
		&user.Identifier,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	query := `
		SELECT identifier, password_hash, created_at
		FROM users
		WHERE identifier = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, identifier).Scan(
		&user.Identifier,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateSession opens a store-managed session for an already verified
// identifier. Only the SHA-256 of the returned token is persisted.
func (db *Postgres) CreateSession(ctx context.Context, identifier string, ttl time.Duration) (*model.Session, error) {
	token, hash, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO sessions (token_hash, identifier, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING expires_at, created_at
	`
	session := model.Session{Token: token, Identifier: identifier}
	err = db.Pool.QueryRow(ctx, query, hash, identifier, time.Now().Add(ttl)).Scan(
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Authenticate resolves an opaque session token. Unknown tokens yield
// ErrInvalidSession and lapsed ones ErrSessionExpired.
func (db *Postgres) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	query := `
		SELECT identifier, expires_at, created_at
		FROM sessions
		WHERE token_hash = $1
	`
	session := model.Session{Token: token}
	err := db.Pool.QueryRow(ctx, query, hashSessionToken(token)).Scan(
		&session.Identifier,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if !time.Now().Before(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

func (db *Postgres) DeleteSession(ctx context.Context, token string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, hashSessionToken(token))
	return err
}

// PurgeExpiredSessions removes sessions that lapsed before cutoff.
func (db *Postgres) PurgeExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func newSessionToken() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("session token entropy: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	return token, hashSessionToken(token), nil
}

func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
