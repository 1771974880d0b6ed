package iocache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/huangsam/hoopstat/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRedisEntry(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		body, version, ts, err := decodeRedisEntry(map[string]string{
			redisFieldValue:   `{"a":1}`,
			redisFieldVersion: "3",
			redisFieldTS:      "1700000000",
		})
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(body))
		assert.Equal(t, 3, version)
		assert.Equal(t, int64(1700000000), ts)
	})

	t.Run("missing key is a miss", func(t *testing.T) {
		_, _, _, err := decodeRedisEntry(map[string]string{})
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("empty value is still a hit", func(t *testing.T) {
		body, _, _, err := decodeRedisEntry(map[string]string{
			redisFieldValue:   "",
			redisFieldVersion: "1",
			redisFieldTS:      "5",
		})
		require.NoError(t, err)
		assert.Empty(t, body)
	})

	t.Run("corrupt version", func(t *testing.T) {
		_, _, _, err := decodeRedisEntry(map[string]string{
			redisFieldValue:   "x",
			redisFieldVersion: "v1",
			redisFieldTS:      "5",
		})
		assert.ErrorContains(t, err, "version")
	})

	t.Run("corrupt timestamp", func(t *testing.T) {
		_, _, _, err := decodeRedisEntry(map[string]string{
			redisFieldValue:   "x",
			redisFieldVersion: "1",
		})
		assert.ErrorContains(t, err, "timestamp")
	})
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "hoopstat:cache:abc", redisKey("abc"))
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	_, err := NewRedisStore("http://localhost:6379", 0)
	assert.ErrorContains(t, err, "invalid Redis URL")
}

// newMiniRedisStore opens a RedisStore against an in-process Redis server.
func newMiniRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr()+"/0", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, mr := newMiniRedisStore(t, time.Hour)

	_, _, _, err := store.Get("missing")
	assert.ErrorIs(t, err, redis.Nil)

	require.NoError(t, store.Set("k1", []byte(`{"a":1}`), 1, 1700000000))
	require.NoError(t, store.Set("k2", []byte("hello"), 1, 1700000100))

	body, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)
	assert.Equal(t, time.Hour, mr.TTL(redisKey("k1")))

	// Overwrite replaces every field.
	require.NoError(t, store.Set("k1", []byte("xy"), 2, 1700000200))
	body, version, ts, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, "xy", string(body))
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(1700000200), ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.RedisBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, int64(len("xy")+len("hello")), status.TableSizeBytes)
	assert.Equal(t, time.Unix(1700000100, 0), status.OldestEntryTime)
	assert.Equal(t, time.Unix(1700000200, 0), status.LastEntryTime)

	// Keys outside the hoopstat namespace are left alone.
	require.NoError(t, mr.Set("other:key", "keep"))
	require.NoError(t, store.Clear())
	assert.True(t, mr.Exists("other:key"))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalEntries)
	assert.True(t, status.LastEntryTime.IsZero())
}

func TestRedisStore_NoTTL(t *testing.T) {
	store, mr := newMiniRedisStore(t, 0)
	require.NoError(t, store.Set("k", []byte("v"), 1, 1))
	assert.Zero(t, mr.TTL(redisKey("k")))
}

func TestRedisStore_ClearEmpty(t *testing.T) {
	store, _ := newMiniRedisStore(t, 0)
	assert.NoError(t, store.Clear())
}
