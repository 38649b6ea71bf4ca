//go:build integration

package redis_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/twitch-relay/broadcast/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// SetupRedisContainer creates and starts a Redis testcontainer, returning its address
func SetupRedisContainer(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()

	redisContainer, err := testcontainersredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	addr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")

	cleanup := func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	}

	return strings.TrimPrefix(addr, "redis://"), cleanup
}

func TestBroadcasterIntegration(t *testing.T) {
	ctx := context.Background()
	addr, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()

	sub := client.Subscribe(ctx, "12826")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	b, err := redis.NewBroadcaster(addr, "", 0)
	require.NoError(t, err)
	defer b.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Publish(ctx, "12826", "channel.follow", []byte(`{"n":`+string(rune('0'+i))+`}`)))
	}

	for i := 0; i < 3; i++ {
		select {
		case msg := <-sub.Channel():
			var got redis.Message
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
			assert.Equal(t, "channel.follow", got.Event)
			assert.JSONEq(t, `{"n":`+string(rune('0'+i))+`}`, string(got.Data))
		case <-time.After(5 * time.Second):
			t.Fatalf("message %d not received", i)
		}
	}
}
