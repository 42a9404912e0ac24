package lib

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devmesh/Backend-Dev-Mesh/src/config"
)

var Redis *goredis.Client

const (
	pairLockTTL     = 5 * time.Second
	pairLockRetries = 20
	pairLockBackoff = 50 * time.Millisecond
)

// ConnectRedis initializes the Redis client used for per-pair advisory
// locks. Redis being unreachable is not fatal: the lock degrades to a
// no-op and the unique pairKey index stays the backstop.
func ConnectRedis(cfg *config.Config) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		Log.Warn("Redis unavailable, pair lock disabled", zap.Error(err))
		return
	}

	Redis = client
	Log.Info("Connected to Redis")
}

// AcquirePairLock takes the advisory lock for an unordered user pair so
// that concurrent send/review calls for the same pair run one at a time.
// Best effort: if the lock cannot be taken the caller proceeds anyway and
// the unique index decides the race. Always returns a usable release func.
func AcquirePairLock(ctx context.Context, pairKey string) func() {
	if Redis == nil {
		return func() {}
	}

	key := "lock:pair:" + pairKey
	for i := 0; i < pairLockRetries; i++ {
		ok, err := Redis.SetNX(ctx, key, "1", pairLockTTL).Result()
		if err != nil {
			Log.Warn("Pair lock error", zap.String("key", key), zap.Error(err))
			return func() {}
		}
		if ok {
			return func() { Redis.Del(context.Background(), key) }
		}

		select {
		case <-ctx.Done():
			return func() {}
		case <-time.After(pairLockBackoff):
		}
	}

	Log.Warn("Pair lock contention, proceeding without lock", zap.String("key", key))
	return func() {}
}
