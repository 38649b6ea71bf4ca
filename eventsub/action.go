package eventsub

import "fmt"

/* Action is the requested change on the subscription control endpoint
 */
type Action int

const (
	Subscribe Action = iota + 1
	Unsubscribe
)

// Actions lists the valid actions in the order they are reported to clients
var Actions = []Action{Subscribe, Unsubscribe}

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case Subscribe:
		return "subscribe"
	case Unsubscribe:
		return "unsubscribe"
	default:
		return "unknown"
	}
}

// NewAction creates an Action from a string, zero if unknown
func NewAction(s string) Action {
	switch s {
	case "subscribe":
		return Subscribe
	case "unsubscribe":
		return Unsubscribe
	default:
		return 0
	}
}

// Validate checks if the action is valid
func (a Action) Validate() error {
	if a != Subscribe && a != Unsubscribe {
		return fmt.Errorf("invalid action: %d", a)
	}
	return nil
}
