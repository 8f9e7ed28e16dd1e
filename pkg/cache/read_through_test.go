package cache

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache lưu JSON giống RedisCache
type memCache struct {
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) DeletePattern(_ context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memCache) Ping(context.Context) error { return nil }

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	loads := 0
	load := func(context.Context) (item, bool, error) {
		loads++
		return item{ID: 1, Name: "Fantasy"}, true, nil
	}

	for i := 0; i < 3; i++ {
		got, found, err := GetOrLoad(ctx, c, "category:1", time.Minute, load)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, item{ID: 1, Name: "Fantasy"}, got)
	}
	assert.Equal(t, 1, loads)
}

func TestGetOrLoad_NotFoundIsNotCached(t *testing.T) {
	c := newMemCache()
	_, found, err := GetOrLoad(context.Background(), c, "category:2", time.Minute,
		func(context.Context) (*item, bool, error) { return nil, false, nil })
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, c.data)
}

func TestGetOrLoad_CacheErrorFallsBack(t *testing.T) {
	c := newMemCache()
	c.getErr = errors.New("redis down")

	got, found, err := GetOrLoad(context.Background(), c, "k", time.Minute,
		func(context.Context) (item, bool, error) { return item{ID: 3}, true, nil })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(3), got.ID)
}

func TestGetOrLoad_LoadErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	_, _, err := GetOrLoad(context.Background(), Noop{}, "k", time.Minute,
		func(context.Context) (item, bool, error) { return item{}, false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestInvalidate(t *testing.T) {
	c := newMemCache()
	c.data["authors:list:all"] = []byte("[]")
	c.data["author:1"] = []byte("{}")

	Invalidate(context.Background(), c, "authors:list:*")

	assert.NotContains(t, c.data, "authors:list:all")
	assert.Contains(t, c.data, "author:1")
}
