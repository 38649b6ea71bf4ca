package eventsub

import "context"

/* Small, focused interfaces over the collaborators the service talks to
 * Implementations live in eventsub/helix and broadcast/*
 */

// SubscriptionReader lists upstream subscriptions
type SubscriptionReader interface {
	/* ListEnabled returns every enabled subscription, following pagination
	 */
	ListEnabled(ctx context.Context) ([]Subscription, error)
}

// SubscriptionWriter creates and deletes upstream subscriptions
type SubscriptionWriter interface {
	Create(ctx context.Context, req CreateRequest) (Subscription, error)
	Delete(ctx context.Context, id string) error
}

// SubscriptionAPI is the upstream subscription management API
type SubscriptionAPI interface {
	SubscriptionReader
	SubscriptionWriter
}

// Publisher forwards a payload to a named broadcast channel
type Publisher interface {
	/* Publish sends data to channel under event name
	 * data is a JSON document and is passed through untouched
	 */
	Publish(ctx context.Context, channel, event string, data []byte) error
}

// Broadcaster is a Publisher owning a connection that must be released
type Broadcaster interface {
	Publisher
	Close() error
}

// Definition is how a supported event type is subscribed to
type Definition struct {
	Type    string
	Version string
	// ConditionKeys are filled with the target broadcaster user id
	ConditionKeys []string
}

// Condition builds the subscription condition for the given user id
func (d Definition) Condition(userID string) Condition {
	c := make(Condition, len(d.ConditionKeys))
	for _, key := range d.ConditionKeys {
		c[key] = userID
	}
	return c
}

// Catalog is the allow-list of supported event types
type Catalog interface {
	Lookup(eventType string) (Definition, bool)
	// Types returns the supported types in a stable order
	Types() []string
}
