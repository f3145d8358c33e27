// File: utils/redis.go
package utils

import (
	"context"
	"log"
	"time"

	"medsync/config"

	"github.com/go-redis/redis/v8"
)

// StoreClient is the Redis client backing the persistent key-value store.
var StoreClient *redis.Client

// InitStore initializes the Redis client for the persistent key-value store.
func InitStore() {
	StoreClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisStoreDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := StoreClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Store): %v", err)
	}
}

// GetStoreClient returns the key-value store client.
func GetStoreClient() *redis.Client {
	if StoreClient == nil {
		InitStore()
	}
	return StoreClient
}
