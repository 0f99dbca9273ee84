package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute, "test:", nil), mr
}

func TestGetOrLoad_ReadThrough(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	loads := 0
	load := func(ctx context.Context) ([]item, error) {
		loads++
		return []item{{ID: 1, Name: "Main office"}}, nil
	}

	first, err := GetOrLoad(ctx, c, "locations", load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, c, "locations", load)
	require.NoError(t, err)

	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("test:locations"))
}

func TestDelete_Invalidates(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "services", []item{{ID: 1}})
	c.Delete(ctx, "services")

	var out []item
	assert.False(t, c.Get(ctx, "services", &out))
}

func TestGetOrLoad_LoadErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	errLoad := errors.New("db down")

	_, err := GetOrLoad(context.Background(), c, "employees", func(ctx context.Context) ([]item, error) {
		return nil, errLoad
	})

	assert.ErrorIs(t, err, errLoad)
	assert.False(t, mr.Exists("test:employees"))
}

func TestDisabled(t *testing.T) {
	c := Disabled()
	ctx := context.Background()

	c.Set(ctx, "k", 1)
	var out int
	assert.False(t, c.Get(ctx, "k", &out))
	assert.NotPanics(t, func() { c.Delete(ctx, "k") })
}
