package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/vaddi/internal/infrastructure/cache"
)

type fakeStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
	failSet error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	if s.failGet != nil {
		return redis.NewStringResult("", s.failGet)
	}
	v, ok := s.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *fakeStore) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if s.failSet != nil {
		return redis.NewStatusResult("", s.failSet)
	}
	s.data[key] = value.(string)
	s.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestKey(t *testing.T) {
	k := cache.Key("INR|1000|percent|12|simple|0|period|1|0|0")
	assert.Len(t, k, len("vaddi:calc:")+16)
	assert.Equal(t, k, cache.Key("INR|1000|percent|12|simple|0|period|1|0|0"))
	assert.NotEqual(t, k, cache.Key("INR|1000|percent|12|simple|0|period|2|0|0"))
}

func TestRedisCache_RoundTrip(t *testing.T) {
	store := newFakeStore()
	c := cache.NewRedisCache(store, time.Hour)

	_, found, err := c.Lookup(context.Background(), "req")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Remember(context.Background(), "req", "calc-1"))
	assert.Equal(t, time.Hour, store.ttls[cache.Key("req")])

	id, found, err := c.Lookup(context.Background(), "req")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "calc-1", id)
}

func TestRedisCache_Errors(t *testing.T) {
	store := newFakeStore()
	store.failGet = errors.New("connection refused")
	store.failSet = errors.New("READONLY")
	c := cache.NewRedisCache(store, 0)

	_, _, err := c.Lookup(context.Background(), "req")
	assert.ErrorContains(t, err, "redis get")
	assert.ErrorContains(t, c.Remember(context.Background(), "req", "id"), "redis set")
}

func TestNoop(t *testing.T) {
	var c cache.Noop
	require.NoError(t, c.Remember(context.Background(), "k", "v"))
	_, found, err := c.Lookup(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
}
