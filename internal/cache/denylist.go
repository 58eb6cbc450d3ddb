// Package cache holds the Redis-backed token denylist used by /logout.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultPrefix = "shelf:denylist"

// Denylist remembers revoked token IDs until the tokens would have expired
// anyway, so entries never outlive their purpose.
type Denylist struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewDenylist(client *redis.Client, prefix string) *Denylist {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Denylist{client: client, prefix: prefix}
}

// Revoke denylists tokenID until expiresAt. Already expired tokens are skipped.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.key(tokenID), "1", ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Denylist) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *Denylist) key(tokenID string) string {
	return fmt.Sprintf("%s:%s", d.prefix, tokenID)
}
