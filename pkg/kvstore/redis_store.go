package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "edumate:learner:"

// RedisStore keeps each learner's state in one redis hash.
type RedisStore struct {
	rdb redis.UniversalClient
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisHashKey(owner uuid.UUID) string {
	return redisKeyPrefix + owner.String()
}

func (s *RedisStore) Get(ctx context.Context, owner uuid.UUID, key Key) (string, bool, error) {
	if err := checkOwner(owner); err != nil {
		return "", false, err
	}
	val, err := s.rdb.HGet(ctx, redisHashKey(owner), string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) GetMany(ctx context.Context, owner uuid.UUID, keys ...Key) (map[Key]string, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	out := make(map[Key]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	fields := make([]string, len(keys))
	for i, k := range keys {
		fields[i] = string(k)
	}
	vals, err := s.rdb.HMGet(ctx, redisHashKey(owner), fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hmget: %w", err)
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

// Apply runs the batch inside MULTI/EXEC.
func (s *RedisStore) Apply(ctx context.Context, owner uuid.UUID, batch *Batch) error {
	if err := checkOwner(owner); err != nil {
		return err
	}
	if batch.Len() == 0 {
		return nil
	}
	hash := redisHashKey(owner)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range batch.Ops() {
			if op.Delete {
				pipe.HDel(ctx, hash, string(op.Key))
				continue
			}
			pipe.HSet(ctx, hash, string(op.Key), op.Value)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis apply batch: %w", err)
	}
	return nil
}
