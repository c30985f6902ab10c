package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// InitRedisServer connects the client that backs the filtered-list cache.
// The cache is load-bearing for list endpoints, so a redis that cannot be
// reached at startup is fatal.
func InitRedisServer(ctx context.Context) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		Password: GetEnv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		panic(fmt.Sprintf("failed to connect to redis: %v", err))
	}

	return client
}
