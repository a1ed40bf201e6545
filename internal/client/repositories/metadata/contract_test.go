package metadata

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a constructor per Repository implementation; every
// implementation must pass the same contract.
func backends() map[string]func(t *testing.T) Repository {
	return map[string]func(t *testing.T) Repository{
		"memory": func(t *testing.T) Repository {
			return NewMemoryRepository()
		},
		"sqlite": func(t *testing.T) Repository {
			return NewSQLiteRepository(setupDB(t))
		},
		"redis": func(t *testing.T) Repository {
			rdb, _ := newTestRedis(t)
			return NewRedisRepository(rdb, "test:")
		},
	}
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return rdb, mr
}

func TestRepositoryContract(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("missing key is nil, nil", func(t *testing.T) {
				r := newRepo(t)
				v, err := r.Get(ctx, "absent")
				require.NoError(t, err)
				assert.Nil(t, v)
			})

			t.Run("set upserts", func(t *testing.T) {
				r := newRepo(t)
				require.NoError(t, r.Set(ctx, "auth", []byte("old")))
				require.NoError(t, r.Set(ctx, "auth", []byte("new")))

				v, err := r.Get(ctx, "auth")
				require.NoError(t, err)
				assert.Equal(t, []byte("new"), v)
			})

			t.Run("delete is idempotent", func(t *testing.T) {
				r := newRepo(t)
				require.NoError(t, r.Set(ctx, "x", []byte{1}))
				require.NoError(t, r.Delete(ctx, "x"))
				require.NoError(t, r.Delete(ctx, "x"))

				v, err := r.Get(ctx, "x")
				require.NoError(t, err)
				assert.Nil(t, v)
			})

			t.Run("list returns every pair", func(t *testing.T) {
				r := newRepo(t)
				require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
				require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

				m, err := r.List(ctx)
				require.NoError(t, err)
				assert.Equal(t, map[string][]byte{"a": {0xAA}, "b": {0xBB, 0xCC}}, m)
			})

			t.Run("clear drops everything", func(t *testing.T) {
				r := newRepo(t)
				require.NoError(t, r.Set(ctx, "auth", []byte("{}")))
				require.NoError(t, r.Set(ctx, "settings", []byte("dark")))
				require.NoError(t, r.Clear(ctx))

				m, err := r.List(ctx)
				require.NoError(t, err)
				assert.Empty(t, m)

				v, err := r.Get(ctx, "settings")
				require.NoError(t, err)
				assert.Nil(t, v)
			})
		})
	}
}

func TestMemoryRepository_CopiesValues(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'Y'
	again, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestRedisRepository_ClearKeepsForeignKeys(t *testing.T) {
	rdb, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("other:keep", "1"))
	r := NewRedisRepository(rdb, "tk:")
	require.NoError(t, r.Set(ctx, "auth", []byte("{}")))
	require.NoError(t, r.Clear(ctx))

	assert.True(t, mr.Exists("other:keep"))
	assert.False(t, mr.Exists("tk:auth"))
}

func TestRedisRepository_DefaultPrefix(t *testing.T) {
	rdb, mr := newTestRedis(t)
	r := NewRedisRepository(rdb, "")

	require.NoError(t, r.Set(context.Background(), "auth", []byte("v")))
	assert.True(t, mr.Exists(DefaultRedisPrefix+"auth"))
}

func TestRedisRepository_ErrorsWrapped(t *testing.T) {
	rdb, mr := newTestRedis(t)
	r := NewRedisRepository(rdb, "tk:")
	mr.Close()
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set metadata[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")
}

// compile-time checks
var (
	_ Repository = (*MemoryRepository)(nil)
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
)
