package mem

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "facturo:revoked:"

// RedisRevocationStore shares revocations between API instances.
type RedisRevocationStore struct {
	client redis.UniversalClient
}

func NewRedisRevocationStore(client redis.UniversalClient) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.client.Get(ctx, revokedKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
