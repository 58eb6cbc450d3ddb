package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rise-labs/shelf-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAuthIssueVerifyRevoke(t *testing.T) {
	store := newFakeSessionStore()
	auth, err := NewSessionAuth(store, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	tok, expiresAt, err := auth.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := auth.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Empty(t, claims.TokenID)

	require.NoError(t, auth.Revoke(ctx, tok, claims))
	_, err = auth.Verify(ctx, tok)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestSessionAuthVerifyErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("expired", func(t *testing.T) {
		store := newFakeSessionStore()
		store.sessions["old"] = model.Session{Token: "old", Identifier: "a", ExpiresAt: time.Now().Add(-time.Minute)}
		auth, err := NewSessionAuth(store, time.Hour)
		require.NoError(t, err)

		_, err = auth.Verify(ctx, "old")
		assert.True(t, errors.Is(err, ErrTokenExpired))
	})

	t.Run("unknown", func(t *testing.T) {
		auth, err := NewSessionAuth(newFakeSessionStore(), time.Hour)
		require.NoError(t, err)

		_, err = auth.Verify(ctx, "nope")
		assert.True(t, errors.Is(err, ErrTokenInvalid))
	})

	t.Run("store down", func(t *testing.T) {
		store := newFakeSessionStore()
		store.err = errStoreDown
		auth, err := NewSessionAuth(store, time.Hour)
		require.NoError(t, err)

		_, err = auth.Verify(ctx, "any")
		assert.True(t, errors.Is(err, ErrUpstream))
		assert.True(t, errors.Is(err, errStoreDown))

		_, _, err = auth.Issue(ctx, "a")
		assert.True(t, errors.Is(err, ErrUpstream))
	})
}

func TestNewSessionAuthMisconfigured(t *testing.T) {
	_, err := NewSessionAuth(newFakeSessionStore(), 0)
	assert.True(t, errors.Is(err, ErrMisconfigured))
}

func TestDenylistVerifier(t *testing.T) {
	ctx := context.Background()
	tm := newTestTokenManager(t, "secret")
	list := newFakeDenylist()
	v := NewDenylistVerifier(tm, list)

	tok, _, err := tm.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	claims, err := v.Verify(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, v.Revoke(ctx, tok, claims))
	_, err = v.Verify(ctx, tok)
	assert.True(t, errors.Is(err, ErrTokenInvalid))

	other, _, err := tm.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	assert.NoError(t, err, "revoking one token must not affect another")

	list.err = errStoreDown
	_, err = v.Verify(ctx, other)
	assert.True(t, errors.Is(err, ErrUpstream))

	assert.True(t, errors.Is(v.Revoke(ctx, tok, nil), ErrTokenInvalid))
}
