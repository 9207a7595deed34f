package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hzfm/config"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := ConnectRedis(context.Background(), &config.Config{
		RedisHost: mr.Host(),
		RedisPort: mr.Port(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCacheGetSet(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	body, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, body)

	require.NoError(t, cache.Set(ctx, []byte(sampleTable)))

	body, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleTable, string(body))
	assert.Equal(t, time.Hour, mr.TTL(SnapshotKey))
}

func TestRedisCacheTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := cache.TTL(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "missing key")

	require.NoError(t, mr.Set(SnapshotKey, sampleTable))
	d, ok, err := cache.TTL(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "key without expiry")
	assert.Zero(t, d)

	require.NoError(t, cache.Set(ctx, []byte(sampleTable)))
	d, ok, err = cache.TTL(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, d)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.TTL(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "expired key")
}

func TestRedisCacheErrors(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Minute)
	mr.Close()

	_, _, err := cache.Get(context.Background())
	assert.ErrorContains(t, err, SnapshotKey)
	assert.ErrorContains(t, cache.Set(context.Background(), []byte("x")), SnapshotKey)
}

func TestStoreWithRedisCache(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()

	first := &countingSource{body: sampleTable}
	_, err := NewStore(first, WithCache(NewRedisCache(client, time.Hour))).Snapshot(ctx)
	require.NoError(t, err)

	// A second process sharing the cache does not hit its source.
	second := &countingSource{body: "garbage"}
	records, err := NewStore(second, WithCache(NewRedisCache(client, time.Hour))).Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.EqualValues(t, 0, second.calls.Load())
}

func TestConnectRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := ConnectRedis(context.Background(), &config.Config{RedisHost: host, RedisPort: port})
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
