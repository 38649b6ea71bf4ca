package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the JSON body of an EventSub delivery.
// Only the top-level keys are split, values stay raw: the body is forwarded untouched.
type Envelope struct {
	fields map[string]json.RawMessage
}

// Parse decodes a delivery body. Any valid JSON is accepted; a body that is
// not an object simply has no fields.
func Parse(data []byte) (Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Envelope{}, fmt.Errorf("unmarshaling payload: empty body")
	}

	var raw json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Envelope{}, fmt.Errorf("unmarshaling payload: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Envelope{}, nil
	}
	return Envelope{fields: fields}, nil
}

// Field returns the raw value of a top-level key, nil when absent
func (e Envelope) Field(key string) json.RawMessage {
	return e.fields[key]
}

// Challenge returns the string sent on webhook_callback_verification messages
func (e Envelope) Challenge() (string, error) {
	raw, ok := e.fields["challenge"]
	if !ok {
		return "", fmt.Errorf("unmarshaling payload: missing challenge")
	}
	var challenge string
	if err := json.Unmarshal(raw, &challenge); err != nil {
		return "", fmt.Errorf("unmarshaling payload: challenge must be a string: %w", err)
	}
	return challenge, nil
}

// Transform prepares the payload forwarded for an event type.
// Every supported type is currently forwarded as received.
func Transform(_ string, data []byte) []byte {
	return data
}
