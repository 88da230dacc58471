package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis at addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Config describes one token bucket per key.
type Config struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	// TTL is how long an idle bucket is kept. It is raised to at least five
	// refill intervals.
	TTL    time.Duration
	Prefix string
}

// tokenBucketScript refills and takes one token atomically.
// Returns {allowed, tokens_left, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
    tokens = math.min(capacity, tokens + (intervals * refill_tokens))
    last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisTokenBucket limits requests per key with a token bucket kept in
// Redis, so every replica of the server shares the same budget.
type RedisTokenBucket struct {
	rdb redis.Scripter
	cfg Config
	now func() time.Time
}

func NewRedisTokenBucket(rdb redis.Scripter, cfg Config) *RedisTokenBucket {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "rl"
	}
	return &RedisTokenBucket{rdb: rdb, cfg: cfg, now: time.Now}
}

// Limit is the bucket capacity.
func (b *RedisTokenBucket) Limit() int {
	return b.cfg.Capacity
}

// Allow takes one token from key's bucket.
func (b *RedisTokenBucket) Allow(ctx context.Context, key string) (allowed bool, remaining int64, retryAfter time.Duration, err error) {
	ttlSeconds := int64(b.cfg.TTL / time.Second)
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}
	vals, err := tokenBucketScript.Run(ctx, b.rdb, []string{b.cfg.Prefix + ":" + key},
		b.now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		ttlSeconds,
	).Slice()
	if err != nil {
		return false, 0, 0, fmt.Errorf("run token bucket script: %w", err)
	}
	if len(vals) != 3 {
		return false, 0, 0, fmt.Errorf("unexpected token bucket result %v", vals)
	}
	retryMs := asInt64(vals[2])
	return asInt64(vals[0]) == 1, asInt64(vals[1]), time.Duration(retryMs) * time.Millisecond, nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
