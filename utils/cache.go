package utils

import (
	"context"
	"log"
	"time"

	"musa/config"

	"github.com/go-redis/redis/v8"
)

// TokenCacheClient holds short lived tokens such as email verification links.
var TokenCacheClient *redis.Client

// InitTokenCache initializes the Redis client used for token storage.
func InitTokenCache(cfg *config.Config) {
	TokenCacheClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisTokenDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := TokenCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Tokens): %v", err)
	}
}

// GetTokenCacheClient returns the token cache client.
func GetTokenCacheClient() *redis.Client {
	return TokenCacheClient
}
