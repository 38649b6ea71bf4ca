package metrics

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/marcelsud/twitch-relay/eventsub"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Observer implements eventsub.Observer by counting every step with OpenTelemetry instruments
type Observer struct {
	received      metric.Int64Counter
	rejected      metric.Int64Counter
	forwarded     metric.Int64Counter
	challenges    metric.Int64Counter
	revocations   metric.Int64Counter
	subscriptions metric.Int64Counter
	enabled       metric.Int64Gauge
}

// NewObserver registers the instruments on meter
func NewObserver(meter metric.Meter) (*Observer, error) {
	o := &Observer{}
	var err error

	// Deliveries received, signed or not
	o.received, err = meter.Int64Counter(
		"eventsub.deliveries.received",
		metric.WithDescription("Number of EventSub deliveries received"),
		metric.WithUnit("{deliveries}"),
	)
	if err != nil {
		return nil, err
	}

	// Deliveries rejected (bad signature, malformed payload, broadcast failure)
	o.rejected, err = meter.Int64Counter(
		"eventsub.deliveries.rejected",
		metric.WithDescription("Number of EventSub deliveries rejected"),
		metric.WithUnit("{deliveries}"),
	)
	if err != nil {
		return nil, err
	}

	o.forwarded, err = meter.Int64Counter(
		"eventsub.events.forwarded",
		metric.WithDescription("Number of events forwarded to the broadcaster"),
		metric.WithUnit("{events}"),
	)
	if err != nil {
		return nil, err
	}

	o.challenges, err = meter.Int64Counter(
		"eventsub.challenges",
		metric.WithDescription("Number of callback verification challenges answered"),
		metric.WithUnit("{challenges}"),
	)
	if err != nil {
		return nil, err
	}

	o.revocations, err = meter.Int64Counter(
		"eventsub.revocations",
		metric.WithDescription("Number of subscription revocations received"),
		metric.WithUnit("{revocations}"),
	)
	if err != nil {
		return nil, err
	}

	o.subscriptions, err = meter.Int64Counter(
		"eventsub.subscriptions.changes",
		metric.WithDescription("Number of subscriptions created or deleted"),
		metric.WithUnit("{subscriptions}"),
	)
	if err != nil {
		return nil, err
	}

	// Last known number of enabled upstream subscriptions
	o.enabled, err = meter.Int64Gauge(
		"eventsub.subscriptions.enabled",
		metric.WithDescription("Number of enabled upstream subscriptions at the last listing"),
		metric.WithUnit("{subscriptions}"),
	)
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Observer) RawEvent(ctx context.Context, n eventsub.Notification) {
	o.received.Add(ctx, 1, metric.WithAttributes(
		attribute.String("message.type", n.MessageType.String()),
	))
}

func (o *Observer) Subscriptions(ctx context.Context, subs []eventsub.Subscription) {
	o.enabled.Record(ctx, int64(len(subs)))
}

func (o *Observer) Subscribed(ctx context.Context, sub eventsub.Subscription) {
	o.subscriptions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", eventsub.Subscribe.String()),
		attribute.String("subscription.type", sub.Type),
	))
}

func (o *Observer) Unsubscribed(ctx context.Context, sub eventsub.Subscription) {
	o.subscriptions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", eventsub.Unsubscribe.String()),
		attribute.String("subscription.type", sub.Type),
	))
}

func (o *Observer) Challenge(ctx context.Context, _ eventsub.Notification, _ string) {
	o.challenges.Add(ctx, 1)
}

func (o *Observer) Revoked(ctx context.Context, n eventsub.Notification) {
	o.revocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("subscription.type", n.SubscriptionType),
	))
}

func (o *Observer) Forwarded(ctx context.Context, n eventsub.Notification, channel string) {
	o.forwarded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("subscription.type", n.SubscriptionType),
		attribute.String("channel", channel),
	))
}

func (o *Observer) Rejected(ctx context.Context, _ eventsub.Notification, err error) {
	o.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason(err)),
	))
}

func reason(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode != "" {
		return rich.TextCode
	}
	return "UNKNOWN"
}
