package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDenylist(t *testing.T) (*Denylist, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewDenylist(client, ""), mr
}

func TestDenylistRevoke(t *testing.T) {
	d, mr := setupDenylist(t)
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("shelf:denylist:jti-1"))

	mr.FastForward(2 * time.Minute)

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylistSkipsExpiredTokens(t *testing.T) {
	d, mr := setupDenylist(t)

	require.NoError(t, d.Revoke(context.Background(), "old", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists("shelf:denylist:old"))
}

func TestDenylistRedisDown(t *testing.T) {
	d, mr := setupDenylist(t)
	mr.Close()

	_, err := d.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
	assert.Error(t, d.Ping(context.Background()))
}

func TestNewRedisClientInvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "invalid://url")
	assert.Error(t, err)
}
