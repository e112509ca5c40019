// file: internals/features/spp/cache/stats_cache.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	repository "sppku_backend/internals/features/spp/repository"
)

const (
	DefaultStatsKey = "spp:stats"
	DefaultStatsTTL = 5 * time.Minute
)

// StatsCache menyimpan ringkasan dashboard per versi. Database tetap sumber kebenaran.
// Invalidate menaikkan versi, sehingga Set dengan versi lama tidak pernah terbaca lagi.
type StatsCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, ver int64) (*repository.Stats, bool, error)
	Set(ctx context.Context, ver int64, s repository.Stats) error
	Invalidate(ctx context.Context) error
}

/* ===================== REDIS ===================== */

type RedisStatsCache struct {
	RDB *redis.Client
	Key string
	TTL time.Duration
}

func NewRedisStatsCache(rdb *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &RedisStatsCache{RDB: rdb, Key: DefaultStatsKey, TTL: ttl}
}

// spp:stats:ver (tanpa TTL)
func (c *RedisStatsCache) VersionKey() string { return c.Key + ":ver" }

// spp:stats:<ver>
func (c *RedisStatsCache) DataKey(ver int64) string { return fmt.Sprintf("%s:%d", c.Key, ver) }

func (c *RedisStatsCache) Version(ctx context.Context) (int64, error) {
	ver, err := c.RDB.Get(ctx, c.VersionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func (c *RedisStatsCache) Get(ctx context.Context, ver int64) (*repository.Stats, bool, error) {
	raw, err := c.RDB.Get(ctx, c.DataKey(ver)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s repository.Stats
	if err := sonic.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, ver int64, s repository.Stats) error {
	raw, err := sonic.Marshal(s)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, c.DataKey(ver), raw, c.TTL).Err()
}

// Invalidate: versi naik, entri lama dibiarkan kedaluwarsa lewat TTL
func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	return c.RDB.Incr(ctx, c.VersionKey()).Err()
}

/* ===================== NOOP ===================== */

// NoopStatsCache: Redis tidak dikonfigurasi → selalu miss
type NoopStatsCache struct{}

func (NoopStatsCache) Version(context.Context) (int64, error) { return 0, nil }
func (NoopStatsCache) Get(context.Context, int64) (*repository.Stats, bool, error) {
	return nil, false, nil
}
func (NoopStatsCache) Set(context.Context, int64, repository.Stats) error { return nil }
func (NoopStatsCache) Invalidate(context.Context) error                   { return nil }

// New: rdb nil → Noop
func New(rdb *redis.Client, ttl time.Duration) StatsCache {
	if rdb == nil {
		return NoopStatsCache{}
	}
	return NewRedisStatsCache(rdb, ttl)
}
