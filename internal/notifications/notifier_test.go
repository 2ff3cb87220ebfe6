package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), "0xA", "payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {}))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "notifications:user:0xAbC", UserChannel("0xAbC"))

	address, ok := AddressFromChannel("notifications:user:0xAbC")
	assert.True(t, ok)
	assert.Equal(t, "0xAbC", address)

	_, ok = AddressFromChannel("chat:conv:1")
	assert.False(t, ok)
	_, ok = AddressFromChannel("notifications:user:")
	assert.False(t, ok)
}

func TestNotifier_PublishReachesSubscriber(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan [2]string, 1)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		received <- [2]string{channel, payload}
	}))

	require.NoError(t, n.PublishUser(context.Background(), "0xA", `{"type":"notification"}`))

	select {
	case got := <-received:
		assert.Equal(t, "notifications:user:0xA", got[0])
		assert.Equal(t, `{"type":"notification"}`, got[1])
	case <-time.After(testEventuallyTimeout):
		t.Fatal("subscriber did not receive message")
	}
}
