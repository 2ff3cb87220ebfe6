package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	var got cachedThing
	found, err := GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, rdb, "k", cachedThing{Name: "a", Count: 2}, time.Minute))
	found, err = GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedThing{Name: "a", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestJSON_NilClient(t *testing.T) {
	var got cachedThing
	found, err := GetJSON(context.Background(), nil, "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(context.Background(), nil, "k", got, time.Minute))
}

func TestJSON_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, mr.Set("k", "{not json"))

	var got cachedThing
	_, err := GetJSON(context.Background(), rdb, "k", &got)
	assert.Error(t, err)
}

func TestLedgerPostKey(t *testing.T) {
	assert.Equal(t, "ledger:post:42", LedgerPostKey(42))
}
