// Package nats publishes forwarded events on NATS subjects.
package nats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// HeaderEvent carries the event name on every published message
const HeaderEvent = "Eventsub-Event"

// Config holds NATS connection configuration.
type Config struct {
	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	URL string

	// Name is the client name for connection identification.
	Name string

	// ReconnectWait is the time to wait between reconnection attempts.
	ReconnectWait time.Duration

	// Timeout is the connection timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(url string) Config {
	if url == "" {
		url = nats.DefaultURL
	}
	return Config{
		URL:           url,
		Name:          "twitch-relay",
		ReconnectWait: 2 * time.Second,
		Timeout:       5 * time.Second,
	}
}

// Broadcaster implements eventsub.Broadcaster using core NATS.
type Broadcaster struct {
	conn *nats.Conn
}

// NewBroadcaster connects to NATS.
func NewBroadcaster(cfg Config) (*Broadcaster, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Broadcaster{conn: conn}, nil
}

// Subject maps a broadcast channel and event to a NATS subject: {channel}.{event}.
// Subscribers can listen to every event of a channel with "{channel}.>".
func Subject(channel, event string) (string, error) {
	subject := channel + "." + event
	for _, token := range strings.Split(subject, ".") {
		if token == "" || strings.ContainsAny(token, " \t\r\n*>") {
			return "", fmt.Errorf("invalid subject %q", subject)
		}
	}
	return subject, nil
}

// Publish sends data on the channel's event subject.
func (b *Broadcaster) Publish(ctx context.Context, channel, event string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, err := Subject(channel, event)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set(HeaderEvent, event)

	if err := b.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (b *Broadcaster) Close() error {
	return b.conn.Drain()
}
