package storage_test

import (
	"context"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*storage.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return storage.NewRedisStore(client, 0), mr
}

func TestRedisStore(t *testing.T) {
	s, mr := newRedisStore(t)
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), storage.KeyCompare, []byte("[]")))
	assert.True(t, mr.Exists("storefront:"+storage.KeyCompare))
}

func TestRedisStore_KeysTreatsGlobCharactersLiterally(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)
	for _, key := range []string{"cus*1:wishlist", "cus*1:compare", "cus_21:wishlist", "cus?1:wishlist", "cus[1]:wishlist"} {
		require.NoError(t, s.Set(ctx, key, []byte("[]")))
	}

	keys, err := s.Keys(ctx, "cus*1:")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"cus*1:compare", "cus*1:wishlist"}, keys)

	keys, err = s.Keys(ctx, "cus[1]:")
	require.NoError(t, err)
	assert.Equal(t, []string{"cus[1]:wishlist"}, keys)

	keys, err = s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, keys, 5)
}
