package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"school-records-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// GenerateQueryHash builds a stable cache key for a filtered list query.
// Filters are sorted so equivalent queries always hash the same.
func GenerateQueryHash(resourceType string, filters map[string]string, page, pageSize int) string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	query := fmt.Sprintf("resource=%s&page=%d&page_size=%d", resourceType, page, pageSize)
	for _, key := range keys {
		query += fmt.Sprintf("&%s=%s", key, filters[key])
	}

	hash := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(hash[:]))
}

// InvalidateCache removes all cached keys for the given resource type.
// Uses SCAN instead of KEYS for better performance in production.
func InvalidateCache(rdb *redis.Client, resourceType string) error {
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		if err := rdb.Del(context.Background(), key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a resource type without
// blocking the caller.
func InvalidateCacheAsync(rdb *redis.Client, resourceType string) {
	go func() {
		if err := InvalidateCache(rdb, resourceType); err != nil {
			config.Logger.Warn("Cache invalidation failed",
				zap.String("resource_type", resourceType),
				zap.Error(err),
			)
		}
	}()
}
