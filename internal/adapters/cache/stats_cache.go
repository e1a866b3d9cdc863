package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

var _ domain.StatsCache = (*RedisStatsCache)(nil)

const DefaultStatsTTL = 6 * time.Hour

// UnknownGeneration is returned by Get when the generation could not be
// read. Set ignores snapshots carrying it.
const UnknownGeneration int64 = -1

// setIfCurrent writes the snapshot field only while the habit's generation
// still equals ARGV[1]. A missing generation key counts as 0.
var setIfCurrent = redis.NewScript(`
local gen = tonumber(redis.call("GET", KEYS[2]) or "0")
if gen ~= tonumber(ARGV[1]) then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[2], ARGV[3])
redis.call("PEXPIRE", KEYS[1], ARGV[4])
return 1
`)

// RedisStatsCache stores one hash per habit, with a field per "today" the
// snapshot was computed for, next to a generation counter. Invalidation
// drops the whole hash and bumps the counter.
type RedisStatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatsCache(rdb *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &RedisStatsCache{rdb: rdb, ttl: ttl}
}

func statsKey(habitID string) string {
	return fmt.Sprintf("stats:%s", habitID)
}

func generationKey(habitID string) string {
	return fmt.Sprintf("stats:gen:%s", habitID)
}

func (c *RedisStatsCache) Get(ctx context.Context, habitID, today string) (*domain.HabitStats, int64, bool) {
	pipe := c.rdb.Pipeline()
	genCmd := pipe.Get(ctx, generationKey(habitID))
	snapCmd := pipe.HGet(ctx, statsKey(habitID), today)
	_, _ = pipe.Exec(ctx)

	gen, err := genCmd.Int64()
	switch {
	case errors.Is(err, redis.Nil):
		gen = 0
	case err != nil:
		logger.Ctx(ctx).Warn("stats cache read failed", "habit_id", habitID, "error", err)
		return nil, UnknownGeneration, false
	}

	raw, err := snapCmd.Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Ctx(ctx).Warn("stats cache read failed", "habit_id", habitID, "error", err)
			return nil, UnknownGeneration, false
		}
		return nil, gen, false
	}

	var s domain.HabitStats
	if err := json.Unmarshal(raw, &s); err != nil {
		logger.Ctx(ctx).Warn("stats cache entry corrupted, dropping", "habit_id", habitID)
		if err := c.rdb.HDel(ctx, statsKey(habitID), today).Err(); err != nil {
			return nil, UnknownGeneration, false
		}
		return nil, gen, false
	}

	return &s, gen, true
}

// Set reports no error when the snapshot is skipped because the habit was
// invalidated after generation was read.
func (c *RedisStatsCache) Set(ctx context.Context, s *domain.HabitStats, generation int64) error {
	if generation == UnknownGeneration {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	keys := []string{statsKey(s.HabitID), generationKey(s.HabitID)}
	stored, err := setIfCurrent.Run(ctx, c.rdb, keys, generation, s.Today, data, c.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("stats cache write: %w", err)
	}
	if stored == 0 {
		logger.Ctx(ctx).Debug("stats snapshot outdated, not cached", "habit_id", s.HabitID, "generation", generation)
	}
	return nil
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, habitID string) {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, statsKey(habitID))
	pipe.Incr(ctx, generationKey(habitID))
	pipe.Expire(ctx, generationKey(habitID), 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Ctx(ctx).Warn("stats cache invalidation failed", "habit_id", habitID, "error", err)
	}
}
