// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"brokerbook/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LockClient is the redis client backing slot locks. Nil when redis is not configured.
var LockClient *redis.Client

// InitLockCache connects the slot-lock client. An empty REDIS_ADDR leaves it nil.
func InitLockCache() {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Warn("REDIS_ADDR empty, slot locks fall back to in-process locking")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Fatal("Failed to connect to Redis (Lock)", zap.Error(err))
	}
	LockClient = client
}

// GetLockClient returns the slot-lock client, connecting on first use.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockCache()
	}
	return LockClient
}
