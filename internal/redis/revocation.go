package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: revoked_token:{jti}, expiring together with the token.

// RevocationStore is a Redis-backed list of revoked access tokens.
type RevocationStore struct {
	client goredis.Cmdable
}

func NewRevocationStore(client goredis.Cmdable) *RevocationStore {
	return &RevocationStore{client: client}
}

func revokedTokenKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

// Revoke marks tokenID as revoked for ttl.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedTokenKey(tokenID), "1", ttl).Err()
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
