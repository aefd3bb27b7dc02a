package ratelimit

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"

	"github.com/redis/go-redis/v9"
)

// redisThrottle shares one login-attempt window per key across every
// replica of the server, so an attacker cannot reset their budget by
// spreading attempts over instances.
type redisThrottle struct {
	client *redis.Client
	now    func() time.Time
}

// The first attempt on a key arms the window expiry; later attempts
// only count. INCR and PEXPIRE run atomically so two concurrent first
// attempts cannot leave the key unexpiring.
var loginAttemptScript = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {hits, redis.call("PTTL", KEYS[1])}
`)

func NewRedisLimiter(addr, password string, db int, now func() time.Time) (domain.RateLimiter, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if now == nil {
		now = time.Now
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisThrottle{client: client, now: now}, nil
}

func (r *redisThrottle) Allow(ctx context.Context, key string, limit int, window time.Duration) (domain.RateLimitDecision, error) {
	if limit <= 0 {
		return domain.RateLimitDecision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	windowMillis := window.Milliseconds()
	if windowMillis <= 0 {
		windowMillis = 1000
	}
	reply, err := loginAttemptScript.Run(ctx, r.client, []string{key}, windowMillis).Result()
	if err != nil {
		return domain.RateLimitDecision{}, err
	}
	hits, ttlMillis, err := decodeAttemptReply(reply)
	if err != nil {
		return domain.RateLimitDecision{}, err
	}
	resetAt := r.now()
	if ttlMillis > 0 {
		resetAt = resetAt.Add(time.Duration(ttlMillis) * time.Millisecond)
	}
	remaining := limit - int(hits)
	if remaining < 0 {
		remaining = 0
	}
	return domain.RateLimitDecision{
		Allowed:   hits <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// decodeAttemptReply unpacks the {hits, pttl} pair the script returns.
func decodeAttemptReply(reply any) (hits, ttlMillis int64, err error) {
	values, ok := reply.([]any)
	if !ok || len(values) < 2 {
		return 0, 0, errors.New("unexpected login throttle reply shape")
	}
	hits, ok = values[0].(int64)
	if !ok {
		return 0, 0, errors.New("login throttle counter is not an integer")
	}
	ttlMillis, _ = values[1].(int64)
	return hits, ttlMillis, nil
}
