package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ryoptimus/DevStorm-backend/internal/constants"
)

// Blocklist is the token-revocation store: logout and refresh push the
// token's jti here with a TTL matching the token lifetime, and the auth
// middleware rejects any token whose jti is present.
type Blocklist struct {
	client *redis.Client
}

// NewBlocklist creates a Blocklist over the given redis address.
func NewBlocklist(addr string) *Blocklist {
	return &Blocklist{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// Ping verifies connectivity.
func (b *Blocklist) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Revoke records a jti for the remainder of the token's lifetime.
func (b *Blocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = constants.AccessTokenTTL
	}
	return b.client.Set(ctx, jti, "", ttl).Err()
}

// Contains reports whether a jti has been revoked.
func (b *Blocklist) Contains(ctx context.Context, jti string) (bool, error) {
	_, err := b.client.Get(ctx, jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
