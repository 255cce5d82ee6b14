// Package cache holds the Redis client used as a read-through cache for
// computed statistics. Raw game history in Postgres stays authoritative;
// every cache failure degrades to a recompute.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"brain_arcade/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func Close() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

// GetJSON loads a cached value into v. Returns false on a miss, on any
// Redis error, or when no client is configured.
func GetJSON(ctx context.Context, key string, v interface{}) bool {
	if RDB == nil {
		return false
	}
	data, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("cache decode %s: %v", key, err)
		return false
	}
	return true
}

func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if RDB == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache encode %s: %v", key, err)
		return
	}
	if err := RDB.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

func Delete(ctx context.Context, keys ...string) {
	if RDB == nil || len(keys) == 0 {
		return
	}
	if err := RDB.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache delete %v: %v", keys, err)
	}
}
