package user

import (
	"context"
	"time"

	"musa/utils"

	"github.com/go-redis/redis/v8"
)

// TokenStore keeps single use email tokens until they are used or expire.
type TokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Lookup returns the user bound to token, or "" when unknown or expired.
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type RedisTokenStore struct {
	client *redis.Client
	prefix string
}

// NewRedisTokenStore keeps tokens under prefix, one prefix per token kind.
func NewRedisTokenStore(client *redis.Client, prefix string) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: prefix}
}

func (s *RedisTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(token), userID, ttl).Err()
}

func (s *RedisTokenStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

// key stores tokens hashed so a Redis dump does not leak usable links.
func (s *RedisTokenStore) key(token string) string {
	return s.prefix + utils.HashToken(token)
}
