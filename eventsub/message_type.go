package eventsub

/* MessageType is the value of the Twitch-Eventsub-Message-Type header
 * A verification arrives once per created subscription, then notifications,
 * and a revocation when the upstream drops the subscription
 */
type MessageType int

const (
	UnknownMessage MessageType = iota
	Notify
	Verification
	Revocation
)

// String returns the header representation of the message type
func (m MessageType) String() string {
	switch m {
	case Notify:
		return "notification"
	case Verification:
		return "webhook_callback_verification"
	case Revocation:
		return "revocation"
	default:
		return "unknown"
	}
}

// NewMessageType creates a MessageType from the header value
func NewMessageType(s string) MessageType {
	switch s {
	case "notification":
		return Notify
	case "webhook_callback_verification":
		return Verification
	case "revocation":
		return Revocation
	default:
		return UnknownMessage
	}
}
