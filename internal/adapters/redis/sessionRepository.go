package redis

import (
	"context"
	"time"

	"blogly/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "session:revoked:"

// SessionRevokerRedis keeps ended session ids in Redis with a TTL equal to
// the remaining lifetime of the token, so entries expire on their own.
type SessionRevokerRedis struct {
	Client *redis.Client
}

func NewSessionRevokerRedis(client *redis.Client) *SessionRevokerRedis {
	return &SessionRevokerRedis{Client: client}
}

func (r *SessionRevokerRedis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedKeyPrefix + tokenID
	if err := r.Client.Set(ctx, key, 1, ttl).Err(); err != nil {
		return err
	}
	config.Logger.Debug("Session revoked", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *SessionRevokerRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
