package eventsub

import "context"

/* Observer is told about every significant step of a request
 * The service calls it unconditionally; implementations decide whether
 * to act (debug mirroring, metrics)
 */
type Observer interface {
	RawEvent(ctx context.Context, n Notification)
	Subscriptions(ctx context.Context, subs []Subscription)
	Subscribed(ctx context.Context, sub Subscription)
	Unsubscribed(ctx context.Context, sub Subscription)
	Challenge(ctx context.Context, n Notification, challenge string)
	Revoked(ctx context.Context, n Notification)
	Forwarded(ctx context.Context, n Notification, channel string)
	Rejected(ctx context.Context, n Notification, err error)
}

// NopObserver ignores everything
type NopObserver struct{}

func (NopObserver) RawEvent(context.Context, Notification)          {}
func (NopObserver) Subscriptions(context.Context, []Subscription)   {}
func (NopObserver) Subscribed(context.Context, Subscription)        {}
func (NopObserver) Unsubscribed(context.Context, Subscription)      {}
func (NopObserver) Challenge(context.Context, Notification, string) {}
func (NopObserver) Revoked(context.Context, Notification)           {}
func (NopObserver) Forwarded(context.Context, Notification, string) {}
func (NopObserver) Rejected(context.Context, Notification, error)   {}

// Observers fans every call out, in order
type Observers []Observer

func (o Observers) RawEvent(ctx context.Context, n Notification) {
	for _, obs := range o {
		obs.RawEvent(ctx, n)
	}
}

func (o Observers) Subscriptions(ctx context.Context, subs []Subscription) {
	for _, obs := range o {
		obs.Subscriptions(ctx, subs)
	}
}

func (o Observers) Subscribed(ctx context.Context, sub Subscription) {
	for _, obs := range o {
		obs.Subscribed(ctx, sub)
	}
}

func (o Observers) Unsubscribed(ctx context.Context, sub Subscription) {
	for _, obs := range o {
		obs.Unsubscribed(ctx, sub)
	}
}

func (o Observers) Challenge(ctx context.Context, n Notification, challenge string) {
	for _, obs := range o {
		obs.Challenge(ctx, n, challenge)
	}
}

func (o Observers) Revoked(ctx context.Context, n Notification) {
	for _, obs := range o {
		obs.Revoked(ctx, n)
	}
}

func (o Observers) Forwarded(ctx context.Context, n Notification, channel string) {
	for _, obs := range o {
		obs.Forwarded(ctx, n, channel)
	}
}

func (o Observers) Rejected(ctx context.Context, n Notification, err error) {
	for _, obs := range o {
		obs.Rejected(ctx, n, err)
	}
}
