// Package debug mirrors every EventSub step to the log and, when enabled,
// to a "debug" broadcast channel.
package debug

import (
	"context"
	"encoding/json"

	"github.com/marcelsud/twitch-relay/eventsub"
	"github.com/rs/zerolog"
)

// Channel receives the mirrored steps
const Channel = "debug"

// Events published on Channel
const (
	EventRaw           = "raw_event"
	EventSubscriptions = "subscriptions"
	EventSubscribed    = "subscribed"
	EventUnsubscribed  = "unsubscribed"
	EventChallenge     = "challenge"
	EventRevoked       = "revoked"
	EventForwarded     = "forwarded"
	EventRejected      = "rejected"
)

// Observer implements eventsub.Observer.
// Publish failures are logged and never reach the request.
type Observer struct {
	logger    zerolog.Logger
	publisher eventsub.Publisher
	enabled   bool
}

func NewObserver(logger zerolog.Logger, publisher eventsub.Publisher, enabled bool) *Observer {
	return &Observer{
		logger:    logger.With().Str("component", "eventsub").Logger(),
		publisher: publisher,
		enabled:   enabled,
	}
}

type notification struct {
	MessageID        string          `json:"message_id"`
	MessageType      string          `json:"message_type"`
	SubscriptionType string          `json:"subscription_type,omitempty"`
	Timestamp        string          `json:"timestamp,omitempty"`
	Body             json.RawMessage `json:"body,omitempty"`
	Channel          string          `json:"channel,omitempty"`
	Challenge        string          `json:"challenge,omitempty"`
	Error            string          `json:"error,omitempty"`
}

func newNotification(n eventsub.Notification) notification {
	out := notification{
		MessageID:        n.MessageID,
		MessageType:      n.MessageType.String(),
		SubscriptionType: n.SubscriptionType,
		Timestamp:        n.Timestamp,
	}
	if json.Valid(n.Body) {
		out.Body = n.Body
	}
	return out
}

func (o *Observer) RawEvent(ctx context.Context, n eventsub.Notification) {
	o.logger.Debug().
		Str("message_id", n.MessageID).
		Str("message_type", n.MessageType.String()).
		Str("subscription_type", n.SubscriptionType).
		Int("body_bytes", len(n.Body)).
		Msg("delivery received")
	o.publish(ctx, EventRaw, newNotification(n))
}

func (o *Observer) Subscriptions(ctx context.Context, subs []eventsub.Subscription) {
	o.logger.Debug().Int("count", len(subs)).Msg("enabled subscriptions fetched")
	o.publish(ctx, EventSubscriptions, subs)
}

func (o *Observer) Subscribed(ctx context.Context, sub eventsub.Subscription) {
	o.logger.Info().Str("id", sub.ID).Str("type", sub.Type).Str("status", sub.Status).Msg("subscription created")
	o.publish(ctx, EventSubscribed, sub)
}

func (o *Observer) Unsubscribed(ctx context.Context, sub eventsub.Subscription) {
	o.logger.Info().Str("id", sub.ID).Str("type", sub.Type).Msg("subscription deleted")
	o.publish(ctx, EventUnsubscribed, sub)
}

func (o *Observer) Challenge(ctx context.Context, n eventsub.Notification, challenge string) {
	o.logger.Info().Str("message_id", n.MessageID).Msg("callback verification answered")
	out := newNotification(n)
	out.Challenge = challenge
	o.publish(ctx, EventChallenge, out)
}

func (o *Observer) Revoked(ctx context.Context, n eventsub.Notification) {
	o.logger.Warn().
		Str("message_id", n.MessageID).
		Str("subscription_type", n.SubscriptionType).
		Msg("subscription revoked")
	o.publish(ctx, EventRevoked, newNotification(n))
}

func (o *Observer) Forwarded(ctx context.Context, n eventsub.Notification, channel string) {
	o.logger.Debug().
		Str("message_id", n.MessageID).
		Str("subscription_type", n.SubscriptionType).
		Str("channel", channel).
		Msg("event forwarded")
	out := newNotification(n)
	out.Channel = channel
	o.publish(ctx, EventForwarded, out)
}

func (o *Observer) Rejected(ctx context.Context, n eventsub.Notification, err error) {
	o.logger.Warn().
		Err(err).
		Str("message_id", n.MessageID).
		Str("subscription_type", n.SubscriptionType).
		Msg("delivery rejected")
	out := newNotification(n)
	out.Error = err.Error()
	o.publish(ctx, EventRejected, out)
}

func (o *Observer) publish(ctx context.Context, event string, v any) {
	if !o.enabled || o.publisher == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		o.logger.Error().Err(err).Str("event", event).Msg("encoding debug event")
		return
	}
	if err := o.publisher.Publish(ctx, Channel, event, data); err != nil {
		o.logger.Error().Err(err).Str("event", event).Msg("publishing debug event")
	}
}
