package events

import (
	"fmt"
	"regexp"

	"github.com/marcelsud/twitch-relay/eventsub"
)

// typePattern validates event types: hierarchical, full-stop delimited, [a-zA-Z0-9_.]
var typePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)

/* EventType is a subscribable event: the allow-list entry and the
 * template used to create its upstream subscription
 */
type EventType struct {
	Type          string
	Version       string
	ConditionKeys []string
}

// Validate checks if the event type configuration is valid
func (e *EventType) Validate() error {
	if e.Type == "" {
		return fmt.Errorf("type cannot be empty")
	}
	if !typePattern.MatchString(e.Type) {
		return fmt.Errorf("type must be hierarchical and contain only [a-zA-Z0-9_.]: %s", e.Type)
	}
	if e.Version == "" {
		return fmt.Errorf("version cannot be empty for type %s", e.Type)
	}
	if len(e.ConditionKeys) == 0 {
		return fmt.Errorf("condition must list at least one key for type %s", e.Type)
	}
	seen := make(map[string]bool, len(e.ConditionKeys))
	for _, key := range e.ConditionKeys {
		if key == "" {
			return fmt.Errorf("condition keys cannot be empty for type %s", e.Type)
		}
		if seen[key] {
			return fmt.Errorf("duplicate condition key %q for type %s", key, e.Type)
		}
		seen[key] = true
	}
	return nil
}

// Definition converts the entry into what the subscription controller needs
func (e *EventType) Definition() eventsub.Definition {
	keys := make([]string, len(e.ConditionKeys))
	copy(keys, e.ConditionKeys)
	return eventsub.Definition{
		Type:          e.Type,
		Version:       e.Version,
		ConditionKeys: keys,
	}
}
