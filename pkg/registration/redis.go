package registration

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	// Set of every location that has ever been registered to, so the
	// sweeper knows which sorted sets to trim.
	locationsRedisKey = "registration:locations"

	// Sorted set per location, scored by registration unix microseconds.
	// Scores are float64, which holds microseconds exactly.
	entriesRedisKeyPrefix = "registration:entries:"
)

// Trims one location and forgets it once its set is empty. Runs atomically
// with the MULTI in Insert, so a concurrent join either lands before the
// ZCARD or re-adds the location after the SREM.
//
// KEYS[1] locations set, KEYS[2] entries of ARGV[1], ARGV[2] max score.
const trimEntriesScript = `
local removed = redis.call('ZREMRANGEBYSCORE', KEYS[2], '-inf', ARGV[2])
if redis.call('ZCARD', KEYS[2]) == 0 then
	redis.call('SREM', KEYS[1], ARGV[1])
end
return removed
`

type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{redisClient: redisClient}
}

func entriesRedisKey(location string) string {
	return entriesRedisKeyPrefix + location
}

func (s *RedisStore) Insert(ctx context.Context, entry Entry) error {
	// Each join is its own member, two joins in the same microsecond
	// must not collapse.
	member := &redis.Z{
		Score:  float64(entry.RegisteredAt.UnixMicro()),
		Member: uuid.NewString(),
	}

	if _, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, locationsRedisKey, entry.Location)
		pipe.ZAdd(ctx, entriesRedisKey(entry.Location), member)
		return nil
	}); err != nil {
		return unavailable("insert", err)
	}
	return nil
}

func (s *RedisStore) CountByLocation(ctx context.Context, location string) (int, error) {
	count, err := s.redisClient.ZCard(ctx, entriesRedisKey(location)).Result()
	if err != nil {
		return 0, unavailable("count", err)
	}
	return int(count), nil
}

func (s *RedisStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	locations, err := s.redisClient.SMembers(ctx, locationsRedisKey).Result()
	if err != nil {
		return 0, unavailable("delete", err)
	}
	if len(locations) == 0 {
		return 0, nil
	}

	// Exclusive max, entries registered exactly at cutoff stay.
	maxScore := "(" + strconv.FormatInt(cutoff.UnixMicro(), 10)

	// One round trip for every location.
	cmds := make([]*redis.Cmd, len(locations))
	if _, err := s.redisClient.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, location := range locations {
			cmds[i] = pipe.Eval(ctx, trimEntriesScript,
				[]string{locationsRedisKey, entriesRedisKey(location)},
				location, maxScore,
			)
		}
		return nil
	}); err != nil {
		return 0, unavailable("delete", err)
	}

	var removed int64
	for _, cmd := range cmds {
		n, err := cmd.Int64()
		if err != nil {
			return removed, unavailable("delete", err)
		}
		removed += n
	}
	return removed, nil
}

func (s *RedisStore) Close() error {
	return s.redisClient.Close()
}
