package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefix is prepended to the hex digest in the Twitch-Eventsub-Message-Signature header
const Prefix = "sha256="

// Message builds the signed content: {msgID}{timestamp}{body}, no separators
func Message(msgID, timestamp string, body []byte) string {
	var b strings.Builder
	b.Grow(len(msgID) + len(timestamp) + len(body))
	b.WriteString(msgID)
	b.WriteString(timestamp)
	b.Write(body)
	return b.String()
}

// Compute returns "sha256=" + hex(HMAC-SHA256(secret, message))
func Compute(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return Prefix + hex.EncodeToString(mac.Sum(nil))
}

// Sign computes the header value for a delivery
func Sign(secret, msgID, timestamp string, body []byte) string {
	return Compute(secret, Message(msgID, timestamp, body))
}

// Verify reports whether expected matches the signature computed over message.
// The comparison is constant-time; any difference, including case or length, fails.
func Verify(expected, secret, message string) bool {
	calculated := Compute(secret, message)
	return hmac.Equal([]byte(expected), []byte(calculated))
}
