package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Cache {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Cache{
		"memory": NewMemoryCache("cache", time.Minute, time.Minute),
		"redis":  NewRedisCache(client, "cache"),
	}
}

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := c.Get(ctx, "/api/v1/hotels/Altai")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, c.Set(ctx, "/api/v1/hotels/Altai", []byte(`[]`), time.Minute))
			raw, found, err := c.Get(ctx, "/api/v1/hotels/Altai")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []byte(`[]`), raw)

			require.NoError(t, c.Delete(ctx, "/api/v1/hotels/Altai"))
			_, found, err = c.Get(ctx, "/api/v1/hotels/Altai")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestCache_Flush(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
			require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
			require.NoError(t, c.Flush(ctx))

			for _, key := range []string{"a", "b"} {
				_, found, err := c.Get(ctx, key)
				require.NoError(t, err)
				assert.False(t, found)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache("cache", time.Minute, time.Minute)

	type hotel struct {
		Name string `json:"name"`
	}
	require.NoError(t, SetJSON(ctx, c, "hotel:1", hotel{Name: "Skala"}, time.Minute))

	got, found, err := GetJSON[hotel](ctx, c, "hotel:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Skala", got.Name)
}

func TestProvider_InitRunsOnce(t *testing.T) {
	calls := 0
	p := NewProvider(func(ctx context.Context) (Cache, error) {
		calls++
		return NewMemoryCache("cache", time.Minute, time.Minute), nil
	}, logger.NewNop())

	assert.False(t, p.Ready())
	require.NoError(t, p.Init(context.Background()))
	require.NoError(t, p.Init(context.Background()))
	assert.Equal(t, 1, calls)
	assert.True(t, p.Ready())
}

func TestProvider_InitErrorIsSticky(t *testing.T) {
	boom := errors.New("connection refused")
	p := NewProvider(func(ctx context.Context) (Cache, error) {
		return nil, boom
	}, logger.NewNop())

	assert.ErrorIs(t, p.Init(context.Background()), boom)
	assert.ErrorIs(t, p.Init(context.Background()), boom)
	assert.False(t, p.Ready())
	assert.NoError(t, p.Close())
}
