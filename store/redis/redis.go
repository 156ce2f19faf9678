// Package redis provides a Redis-backed store.Store for hosts that keep
// launch state outside the device, such as kiosk fleets sharing one backend.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/ryhazerus/appirater/store"
)

// Compile-time interface check.
var _ store.Store = (*RedisStore)(nil)

const (
	intPrefix  = "i:"
	boolPrefix = "b:"
)

// RedisStore is a Store backed by Redis. Each namespace is stored as one Redis
// hash; field names carry a type prefix ("i:" for integers, "b:" for flags).
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load returns every value stored in the namespace hash.
func (r *RedisStore) Load(ctx context.Context, namespace string) (store.Record, error) {
	vals, err := r.client.HGetAll(ctx, redisKey(namespace)).Result()
	if err != nil {
		return store.Record{}, fmt.Errorf("appirater/store/redis: load: %w", err)
	}

	rec := store.NewRecord()
	for field, raw := range vals {
		switch {
		case strings.HasPrefix(field, intPrefix):
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return store.Record{}, fmt.Errorf("appirater/store/redis: parse %s: %w", field, err)
			}
			rec.SetInt(strings.TrimPrefix(field, intPrefix), n)
		case strings.HasPrefix(field, boolPrefix):
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return store.Record{}, fmt.Errorf("appirater/store/redis: parse %s: %w", field, err)
			}
			rec.SetBool(strings.TrimPrefix(field, boolPrefix), b)
		}
	}

	return rec, nil
}

// Commit writes every value of batch with a single HSET inside MULTI/EXEC.
func (r *RedisStore) Commit(ctx context.Context, namespace string, batch store.Record) error {
	if batch.Len() == 0 {
		return nil
	}

	values := make([]any, 0, batch.Len()*2)
	for k, v := range batch.Ints {
		values = append(values, intPrefix+k, strconv.FormatInt(v, 10))
	}
	for k, v := range batch.Bools {
		values = append(values, boolPrefix+k, strconv.FormatBool(v))
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey(namespace), values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("appirater/store/redis: commit: %w", err)
	}
	return nil
}

// Reset removes the namespace hash.
func (r *RedisStore) Reset(ctx context.Context, namespace string) error {
	return r.client.Del(ctx, redisKey(namespace)).Err()
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func redisKey(namespace string) string {
	return "appirater:" + namespace
}
