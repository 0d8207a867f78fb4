package session

import (
	"context"
	"time"
)

// Revoker remembers ended sessions until their tokens would have expired
// anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
