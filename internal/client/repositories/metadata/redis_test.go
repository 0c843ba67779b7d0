package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTest(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedis_SetGetDelete(t *testing.T) {
	mr, rdb := newRedisTest(t)
	r := NewRedisRepository(rdb, "")
	ctx := context.Background()

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Set(ctx, "token", []byte("abc")))
	assert.True(t, mr.Exists("bizcards:kv:token"))

	v, err = r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)

	require.NoError(t, r.Delete(ctx, "token", "other"))
	assert.False(t, mr.Exists("bizcards:kv:token"))
	require.NoError(t, r.Delete(ctx, "token"))
}

func TestRedis_PrefixIsolatesNamespaces(t *testing.T) {
	_, rdb := newRedisTest(t)
	a := NewRedisRepository(rdb, "alice:")
	b := NewRedisRepository(rdb, "bob:")
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "token", []byte("t")))

	v, err := b.Get(ctx, "token")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedis_ChangesDeliversWrittenKeys(t *testing.T) {
	_, rdb := newRedisTest(t)
	watcher := NewRedisRepository(rdb, "")
	writer := NewRedisRepository(rdb, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := watcher.Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, writer.Set(ctx, "token", []byte("x")))
	require.NoError(t, writer.Delete(ctx, "darkMode"))

	var got []string
	for len(got) < 2 {
		select {
		case c := <-changes:
			got = append(got, c.Key)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got %v", got)
		}
	}
	assert.Equal(t, []string{"token", "darkMode"}, got)
}

func TestRedis_ErrorsAreWrapped(t *testing.T) {
	mr, rdb := newRedisTest(t)
	r := NewRedisRepository(rdb, "")
	mr.Close()

	ctx := context.Background()
	_, err := r.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kv[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set kv[k]")

	_, err = r.Changes(ctx)
	require.Error(t, err)
}

func TestRedis_ListAndClear(t *testing.T) {
	mr, rdb := newRedisTest(t)
	r := NewRedisRepository(rdb, "")
	other := NewRedisRepository(rdb, "other:")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("t")))
	require.NoError(t, r.Set(ctx, "darkMode", []byte("true")))
	require.NoError(t, other.Set(ctx, "token", []byte("keep")))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"token": []byte("t"), "darkMode": []byte("true")}, all)

	require.NoError(t, r.Clear(ctx))
	all, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.True(t, mr.Exists("other:kv:token"), "clear must stay inside the prefix")
}
