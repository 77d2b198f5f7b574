package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), s
}

func TestRedisCache_SetGetWithTTL(t *testing.T) {
	c, s := newMiniredisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "exchange_rate_USD_GBP", "0.8", time.Hour))

	val, found, err := c.Get(ctx, "exchange_rate_USD_GBP")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0.8", val)
	assert.Equal(t, time.Hour, s.TTL("exchange_rate_USD_GBP"))

	s.FastForward(time.Hour + time.Second)

	_, found, err = c.Get(ctx, "exchange_rate_USD_GBP")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_ZeroTTLNeverExpires(t *testing.T) {
	c, s := newMiniredisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "currency_list", `["USD"]`, 0))
	s.FastForward(24 * time.Hour)

	val, found, err := c.Get(ctx, "currency_list")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["USD"]`, val)
}

func TestRedisCache_GetMissing(t *testing.T) {
	c, _ := newMiniredisCache(t)

	val, found, err := c.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, val)
}

func TestRedisCache_Del(t *testing.T) {
	c, s := newMiniredisCache(t)
	ctx := context.Background()
	require.NoError(t, s.Set("k", "v"))

	require.NoError(t, c.Del(ctx, "k"))

	assert.False(t, s.Exists("k"))
}

func TestRedisCache_Errors(t *testing.T) {
	boom := errors.New("connection refused")

	t.Run("Get", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet("k").SetErr(boom)

		_, found, err := NewRedisCache(db).Get(context.Background(), "k")

		assert.ErrorIs(t, err, boom)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Set", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSet("k", "v", time.Minute).SetErr(boom)

		err := NewRedisCache(db).Set(context.Background(), "k", "v", time.Minute)

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Del", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectDel("k").SetErr(boom)

		err := NewRedisCache(db).Del(context.Background(), "k")

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
