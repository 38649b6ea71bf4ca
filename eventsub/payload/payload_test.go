package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("success - challenge", func(t *testing.T) {
		env, err := Parse([]byte(`{"challenge":"abc123","subscription":{"id":"f1c2","status":"webhook_callback_verification_pending","type":"channel.follow","version":"2"}}`))
		require.NoError(t, err)
		challenge, err := env.Challenge()
		require.NoError(t, err)
		assert.Equal(t, "abc123", challenge)
		assert.JSONEq(t, `{"id":"f1c2","status":"webhook_callback_verification_pending","type":"channel.follow","version":"2"}`,
			string(env.Field("subscription")))
		assert.Nil(t, env.Field("event"))
	})

	t.Run("success - notification", func(t *testing.T) {
		env, err := Parse([]byte(`{"subscription":{"id":"f1c2","type":"channel.follow"},"event":{"user_id":"1234","user_login":"cool_user"}}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"user_id":"1234","user_login":"cool_user"}`, string(env.Field("event")))
	})

	t.Run("success - any shape besides the challenge is accepted", func(t *testing.T) {
		for _, body := range []string{
			`{"subscription":"sub-1","event":{"user_id":"1"}}`,
			`{"subscription":{"id":42},"event":{}}`,
			`{"subscription":null,"event":[1,2,3],"extra":{"nested":true}}`,
			`[1,2,3]`,
			`"just a string"`,
		} {
			_, err := Parse([]byte(body))
			assert.NoError(t, err, body)
		}
	})

	t.Run("error - not json", func(t *testing.T) {
		_, err := Parse([]byte(`{not json`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshaling payload")
	})

	t.Run("error - empty body", func(t *testing.T) {
		_, err := Parse([]byte("  \n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty body")
	})
}

func TestChallenge(t *testing.T) {
	t.Run("error - challenge is not a string", func(t *testing.T) {
		env, err := Parse([]byte(`{"challenge":42}`))
		require.NoError(t, err)

		_, err = env.Challenge()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "challenge must be a string")
	})

	t.Run("error - missing challenge", func(t *testing.T) {
		env, err := Parse([]byte(`{"subscription":{}}`))
		require.NoError(t, err)

		_, err = env.Challenge()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing challenge")
	})

	t.Run("error - body is not an object", func(t *testing.T) {
		env, err := Parse([]byte(`"abc123"`))
		require.NoError(t, err)

		_, err = env.Challenge()
		assert.Error(t, err)
	})
}

func TestTransform(t *testing.T) {
	data := []byte(`{"event":{"user_id":"1"}}`)
	assert.Equal(t, data, Transform("channel.follow", data))
	assert.Equal(t, data, Transform("something.else", data))
}
