package configs

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis: nil jika REDIS_ADDR kosong / tidak bisa di-ping (cache dimatikan, app tetap jalan).
func ConnectRedis() *redis.Client {
	addr := GetEnv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     GetEnv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis tidak bisa dihubungi (%s): %v, cache dimatikan", addr, err)
		_ = rdb.Close()
		return nil
	}

	log.Printf("✅ Redis connected: %s", addr)
	return rdb
}
