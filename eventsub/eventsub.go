package eventsub

import (
	"net/http"
	"time"
)

/* Subscription is the upstream descriptor of an EventSub subscription
 * Fetched fresh on every request, never cached
 */
type Subscription struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	Condition Condition `json:"condition"`
	Transport Transport `json:"transport"`
	CreatedAt time.Time `json:"created_at"`
	Cost      int       `json:"cost"`
}

// Condition holds the type-specific subscription condition, e.g. broadcaster_user_id
type Condition map[string]string

// Transport describes where the upstream delivers notifications
type Transport struct {
	Method   string `json:"method"`
	Callback string `json:"callback,omitempty"`
	Secret   string `json:"secret,omitempty"`
}

// CreateRequest is the body sent upstream to create a subscription
type CreateRequest struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	Condition Condition `json:"condition"`
	Transport Transport `json:"transport"`
}

// TransportWebhook is the only transport method this service registers
const TransportWebhook = "webhook"

// StatusEnabled is the upstream status of an active subscription
const StatusEnabled = "enabled"

/* Notification is one inbound POST delivery
 * Uses value semantics, immutable once built from the request
 */
type Notification struct {
	MessageID        string
	Timestamp        string
	Signature        string
	MessageType      MessageType
	SubscriptionType string
	Body             []byte
}

// Delivery headers sent by the upstream
const (
	HeaderMessageID        = "Twitch-Eventsub-Message-Id"
	HeaderMessageTimestamp = "Twitch-Eventsub-Message-Timestamp"
	HeaderMessageSignature = "Twitch-Eventsub-Message-Signature"
	HeaderMessageType      = "Twitch-Eventsub-Message-Type"
	HeaderMessageRetry     = "Twitch-Eventsub-Message-Retry"
	HeaderSubscriptionType = "Twitch-Eventsub-Subscription-Type"
	HeaderSubscriptionVer  = "Twitch-Eventsub-Subscription-Version"
)

// NewNotification reads the delivery headers case-insensitively
func NewNotification(h http.Header, body []byte) Notification {
	return Notification{
		MessageID:        h.Get(HeaderMessageID),
		Timestamp:        h.Get(HeaderMessageTimestamp),
		Signature:        h.Get(HeaderMessageSignature),
		MessageType:      NewMessageType(h.Get(HeaderMessageType)),
		SubscriptionType: h.Get(HeaderSubscriptionType),
		Body:             body,
	}
}

// Result is the terminal response of a successful dispatch
type Result struct {
	StatusCode  int
	ContentType string
	Body        []byte
}
