package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/marcelsud/twitch-relay/events"
	"github.com/marcelsud/twitch-relay/eventsub"
	"github.com/marcelsud/twitch-relay/eventsub/payload"
	"github.com/marcelsud/twitch-relay/eventsub/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followDefinition(t *testing.T) eventsub.Definition {
	t.Helper()
	def, ok := events.Default().Lookup(events.ChannelFollow)
	require.True(t, ok)
	return def
}

func TestBuildDelivery(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("notification with the sample event", func(t *testing.T) {
		d, err := buildDelivery(followDefinition(t), "12826", "https://relay.example.com/webhook", false, nil, now)
		require.NoError(t, err)

		assert.Equal(t, eventsub.Notify, d.MessageType)
		assert.Equal(t, events.ChannelFollow, d.Type)
		assert.Equal(t, "2", d.Version)
		assert.NotEmpty(t, d.MessageID)
		assert.Equal(t, "2024-01-01T12:00:00Z", d.Timestamp)

		var env deliveryBody
		require.NoError(t, json.Unmarshal(d.Body, &env))
		assert.Empty(t, env.Challenge)
		assert.Equal(t, events.ChannelFollow, env.Subscription.Type)
		assert.Equal(t, eventsub.StatusEnabled, env.Subscription.Status)

		var event map[string]string
		require.NoError(t, json.Unmarshal(env.Event, &event))
		assert.Equal(t, "12826", event["broadcaster_user_id"])
	})

	t.Run("verification carries a challenge", func(t *testing.T) {
		d, err := buildDelivery(followDefinition(t), "12826", "https://relay.example.com/webhook", true, nil, now)
		require.NoError(t, err)

		assert.Equal(t, eventsub.Verification, d.MessageType)
		env, err := payload.Parse(d.Body)
		require.NoError(t, err)
		challenge, err := env.Challenge()
		require.NoError(t, err)
		assert.NotEmpty(t, challenge)

		var body deliveryBody
		require.NoError(t, json.Unmarshal(d.Body, &body))
		assert.Equal(t, verificationPending, body.Subscription.Status)
		assert.Empty(t, body.Event)
	})

	t.Run("custom event", func(t *testing.T) {
		d, err := buildDelivery(followDefinition(t), "12826", "", false, json.RawMessage(`{"user_id":"42"}`), now)
		require.NoError(t, err)
		assert.Contains(t, string(d.Body), `"event":{"user_id":"42"}`)
	})

	t.Run("error - invalid custom event", func(t *testing.T) {
		_, err := buildDelivery(followDefinition(t), "12826", "", false, json.RawMessage(`{nope`), now)
		assert.Error(t, err)
	})

	t.Run("message ids are unique", func(t *testing.T) {
		a, err := buildDelivery(followDefinition(t), "12826", "", false, nil, now)
		require.NoError(t, err)
		b, err := buildDelivery(followDefinition(t), "12826", "", false, nil, now)
		require.NoError(t, err)
		assert.NotEqual(t, a.MessageID, b.MessageID)
	})
}

func TestNewDeliveryRequest(t *testing.T) {
	d, err := buildDelivery(followDefinition(t), "12826", "", false, nil, time.Now())
	require.NoError(t, err)

	req, err := newDeliveryRequest(context.Background(), "http://localhost:8080/webhook", "s3cret", d)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, d.MessageID, req.Header.Get(eventsub.HeaderMessageID))
	assert.Equal(t, "notification", req.Header.Get(eventsub.HeaderMessageType))
	assert.Equal(t, events.ChannelFollow, req.Header.Get(eventsub.HeaderSubscriptionType))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, d.Body, body)

	msg := signature.Message(d.MessageID, d.Timestamp, body)
	assert.True(t, signature.Verify(req.Header.Get(eventsub.HeaderMessageSignature), "s3cret", msg))
	assert.False(t, signature.Verify(req.Header.Get(eventsub.HeaderMessageSignature), "other", msg))
}

func TestDiscardDispatch(t *testing.T) {
	d, err := buildDelivery(followDefinition(t), "12826", "", false, nil, time.Now())
	require.NoError(t, err)

	service := eventsub.NewService(nil, discard{}, events.Default(), "s3cret", "12826")
	res, err := service.Dispatch(context.Background(), eventsub.Notification{
		MessageID:        d.MessageID,
		Timestamp:        d.Timestamp,
		Signature:        signature.Sign("s3cret", d.MessageID, d.Timestamp, d.Body),
		MessageType:      d.MessageType,
		SubscriptionType: d.Type,
		Body:             d.Body,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRootCommand(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"list", "subscribe", "unsubscribe", "trigger"}, names)

	sub, _, err := root.Find([]string{"subscribe"})
	require.NoError(t, err)
	assert.NotNil(t, sub.Flags().Lookup("callback"))

	unsub, _, err := root.Find([]string{"unsubscribe"})
	require.NoError(t, err)
	assert.Nil(t, unsub.Flags().Lookup("callback"))
	assert.Equal(t, events.ChannelFollow, unsub.Flags().Lookup("type").DefValue)
}
