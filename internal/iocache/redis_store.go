package iocache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix namespaces response entries in a shared Redis.
	redisKeyPrefix = "hoopstat:cache:"

	defaultRedisURL = "redis://localhost:6379/0"
	redisOpTimeout  = 5 * time.Second
)

// Hash fields of one cached response.
const (
	redisFieldValue   = "value"
	redisFieldVersion = "version"
	redisFieldTS      = "ts"
)

// RedisStore keeps responses as Redis hashes and lets Redis expire them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contract.CacheStore = &RedisStore{} // Compile-time check

// NewRedisStore connects to the Redis at connStr (a redis:// URL). A positive
// ttl is applied to every entry as a Redis expiry.
func NewRedisStore(connStr string, ttl time.Duration) (*RedisStore, error) {
	if connStr == "" {
		connStr = defaultRedisURL
	}
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

// Get retrieves a response. A miss is reported as redis.Nil.
func (rs *RedisStore) Get(key string) ([]byte, int, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	fields, err := rs.client.HGetAll(ctx, redisKey(key)).Result()
	if err != nil {
		return nil, 0, 0, err
	}
	return decodeRedisEntry(fields)
}

// decodeRedisEntry converts the hash fields of one entry.
func decodeRedisEntry(fields map[string]string) ([]byte, int, int64, error) {
	value, ok := fields[redisFieldValue]
	if !ok {
		return nil, 0, 0, redis.Nil
	}
	version, err := strconv.Atoi(fields[redisFieldVersion])
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache entry version: %w", err)
	}
	ts, err := strconv.ParseInt(fields[redisFieldTS], 10, 64)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache entry timestamp: %w", err)
	}
	return []byte(value), version, ts, nil
}

// Set writes a response and its expiry in one transaction.
func (rs *RedisStore) Set(key string, value []byte, version int, timestamp int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	k := redisKey(key)
	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, k)
	pipe.HSet(ctx, k,
		redisFieldValue, value,
		redisFieldVersion, version,
		redisFieldTS, timestamp,
	)
	if rs.ttl > 0 {
		pipe.Expire(ctx, k, rs.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetStatus scans the hoopstat keys for counts, times and payload size.
func (rs *RedisStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.RedisBackend),
		Connected: true,
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	iter := rs.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var oldest, last int64
	for iter.Next(ctx) {
		k := iter.Val()
		vals, err := rs.client.HMGet(ctx, k, redisFieldTS, redisFieldValue).Result()
		if err != nil {
			return status, fmt.Errorf("failed to read %s: %w", k, err)
		}

		raw, _ := vals[0].(string)
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		value, _ := vals[1].(string)
		status.TotalEntries++
		status.TableSizeBytes += int64(len(value))
		if oldest == 0 || ts < oldest {
			oldest = ts
		}
		if ts > last {
			last = ts
		}
	}
	if err := iter.Err(); err != nil {
		return status, fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if status.TotalEntries > 0 {
		status.OldestEntryTime = time.Unix(oldest, 0)
		status.LastEntryTime = time.Unix(last, 0)
	}
	return status, nil
}

// Clear deletes every hoopstat cache key.
func (rs *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	iter := rs.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return rs.client.Del(ctx, keys...).Err()
}

// Close closes the Redis client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
