package pusher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	pushersdk "github.com/pusher/pusher-http-go/v5"
)

/* Pusher Channels implementation of eventsub.Broadcaster
 * The HTTP client is stateless, Close is a no-op
 */

// Config holds the Pusher application credentials
type Config struct {
	AppID   string
	Key     string
	Secret  string
	Cluster string
	// Host overrides the cluster host, used against local emulators and in tests
	Host   string
	Secure bool
}

type Broadcaster struct {
	client *pushersdk.Client
}

// NewBroadcaster creates a Pusher broadcaster
func NewBroadcaster(cfg Config) (*Broadcaster, error) {
	if cfg.AppID == "" || cfg.Key == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("pusher app id, key and secret are required")
	}
	if cfg.Cluster == "" && cfg.Host == "" {
		return nil, fmt.Errorf("pusher cluster or host is required")
	}

	return &Broadcaster{
		client: &pushersdk.Client{
			AppID:      cfg.AppID,
			Key:        cfg.Key,
			Secret:     cfg.Secret,
			Cluster:    cfg.Cluster,
			Host:       cfg.Host,
			Secure:     cfg.Secure,
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		},
	}, nil
}

// Publish triggers event on channel with data as the event payload
func (b *Broadcaster) Publish(ctx context.Context, channel, event string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.client.Trigger(channel, event, json.RawMessage(data)); err != nil {
		return fmt.Errorf("triggering %s on %s: %w", event, channel, err)
	}
	return nil
}

// Close releases nothing, the Pusher client holds no connection
func (b *Broadcaster) Close() error {
	return nil
}
