package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	msg := Message("e76c6bd4-55c9-4987-8304-da1588d8988b", "2019-11-16T10:11:12.634234626Z", []byte(`{"a":1}`))
	assert.Equal(t, `e76c6bd4-55c9-4987-8304-da1588d8988b2019-11-16T10:11:12.634234626Z{"a":1}`, msg)
}

func TestCompute(t *testing.T) {
	t.Run("known vector", func(t *testing.T) {
		// HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog")
		sig := Compute("key", "The quick brown fox jumps over the lazy dog")
		assert.Equal(t, "sha256=f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", sig)
	})

	t.Run("hex is lowercase and prefixed", func(t *testing.T) {
		sig := Compute("s3cr3t", "message")
		require.True(t, strings.HasPrefix(sig, Prefix))
		hexPart := strings.TrimPrefix(sig, Prefix)
		assert.Len(t, hexPart, 64)
		assert.Equal(t, strings.ToLower(hexPart), hexPart)
	})

	t.Run("same inputs produce same signature", func(t *testing.T) {
		assert.Equal(t, Compute("s3cr3t", "message"), Compute("s3cr3t", "message"))
	})

	t.Run("different secrets produce different signatures", func(t *testing.T) {
		assert.NotEqual(t, Compute("s3cr3t", "message"), Compute("other", "message"))
	})
}

func TestVerify(t *testing.T) {
	cases := []struct {
		secret  string
		message string
	}{
		{"s3cr3t", "msg-1" + "2024-01-01T12:00:00Z" + `{"subscription":{"type":"channel.follow"}}`},
		{"a", ""},
		{"long secret with spaces and ümlauts", "payload"},
		{"", "empty secret"},
	}

	for _, c := range cases {
		t.Run("roundtrip "+c.secret, func(t *testing.T) {
			sig := Compute(c.secret, c.message)
			assert.True(t, Verify(sig, c.secret, c.message))
		})
	}

	t.Run("any single byte mutation fails", func(t *testing.T) {
		secret := "s3cr3t"
		message := "msg-1" + "2024-01-01T12:00:00Z" + `{"challenge":"abc123"}`
		sig := []byte(Compute(secret, message))

		for i := range sig {
			mutated := make([]byte, len(sig))
			copy(mutated, sig)
			mutated[i] ^= 0x01
			assert.False(t, Verify(string(mutated), secret, message), "mutation at byte %d verified", i)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		sig := Compute("s3cr3t", "message")
		assert.False(t, Verify(sig, "wrong", "message"))
	})

	t.Run("wrong message", func(t *testing.T) {
		sig := Compute("s3cr3t", "message")
		assert.False(t, Verify(sig, "s3cr3t", "message2"))
	})

	t.Run("uppercase hex is rejected", func(t *testing.T) {
		sig := Compute("s3cr3t", "message")
		upper := Prefix + strings.ToUpper(strings.TrimPrefix(sig, Prefix))
		assert.False(t, Verify(upper, "s3cr3t", "message"))
	})

	t.Run("empty and truncated expected values", func(t *testing.T) {
		sig := Compute("s3cr3t", "message")
		assert.False(t, Verify("", "s3cr3t", "message"))
		assert.False(t, Verify(sig[:len(sig)-1], "s3cr3t", "message"))
		assert.False(t, Verify(strings.TrimPrefix(sig, Prefix), "s3cr3t", "message"))
	})
}

func TestSign(t *testing.T) {
	body := []byte(`{"challenge":"abc123"}`)
	sig := Sign("s3cr3t", "msg-1", "2024-01-01T12:00:00Z", body)
	assert.True(t, Verify(sig, "s3cr3t", Message("msg-1", "2024-01-01T12:00:00Z", body)))
}
