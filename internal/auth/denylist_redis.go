package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "revoked_token:"

type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(addr, password string) *RedisDenylist {
	return &RedisDenylist{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (r *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to record.
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (r *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.client.Get(ctx, revokedKeyPrefix+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisDenylist) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ TokenDenylist = (*RedisDenylist)(nil)
var _ TokenDenylist = (*MemoryDenylist)(nil)
