package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

/* Redis Pub/Sub implementation of eventsub.Broadcaster
 * Each event is PUBLISHed on the channel as a JSON envelope carrying the
 * event name next to the untouched payload
 */

// Message is what subscribers of a channel receive
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type Broadcaster struct {
	client *redis.Client
}

// NewBroadcaster connects to Redis and verifies the connection
func NewBroadcaster(addr, password string, db int) (*Broadcaster, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return NewBroadcasterWithClient(client), nil
}

// NewBroadcasterWithClient wraps an existing client
func NewBroadcasterWithClient(client *redis.Client) *Broadcaster {
	return &Broadcaster{
		client: client,
	}
}

// Publish sends the event envelope to every subscriber of channel
func (b *Broadcaster) Publish(ctx context.Context, channel, event string, data []byte) error {
	msg, err := json.Marshal(Message{
		Event: event,
		Data:  json.RawMessage(data),
	})
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	if err := b.client.Publish(ctx, channel, msg).Err(); err != nil {
		return fmt.Errorf("publishing %s on %s: %w", event, channel, err)
	}
	return nil
}

// Close closes the Redis connection
func (b *Broadcaster) Close() error {
	return b.client.Close()
}
