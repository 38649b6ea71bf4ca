package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/twitch-relay/events"
	"github.com/marcelsud/twitch-relay/eventsub"
	"github.com/marcelsud/twitch-relay/eventsub/signature"
	"github.com/spf13/cobra"
)

const verificationPending = "webhook_callback_verification_pending"

// delivery is a test message shaped like an upstream one
type delivery struct {
	MessageID   string
	Timestamp   string
	MessageType eventsub.MessageType
	Type        string
	Version     string
	Body        []byte
}

type deliveryBody struct {
	Challenge    string                `json:"challenge,omitempty"`
	Subscription eventsub.Subscription `json:"subscription"`
	Event        json.RawMessage       `json:"event,omitempty"`
}

func newTriggerCommand() *cobra.Command {
	var (
		eventType    string
		targetURL    string
		secret       string
		event        string
		verification bool
	)

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Send a signed test delivery",
		Long: `Send a signed test notification to a running relay, as the upstream would.
With --verification a callback verification challenge is sent instead, and the
relay must answer with the challenge.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrigger(eventType, targetURL, secret, event, verification)
		},
	}

	cmd.Flags().StringVar(&eventType, "type", events.ChannelFollow, "Event type")
	cmd.Flags().StringVar(&targetURL, "url", "http://localhost:8080/webhook", "Relay endpoint")
	cmd.Flags().StringVar(&secret, "secret", "", "Webhook secret (defaults to MY_TWITCH_SECRET)")
	cmd.Flags().StringVar(&event, "event", "", "Event JSON (defaults to a sample event)")
	cmd.Flags().BoolVar(&verification, "verification", false, "Send a callback verification challenge")

	return cmd
}

func runTrigger(eventType, targetURL, secret, event string, verification bool) error {
	if secret == "" {
		secret = cfg.WebhookSecret
	}
	if secret == "" {
		return fmt.Errorf("webhook secret is required: set --secret or MY_TWITCH_SECRET")
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	def, ok := catalog.Lookup(eventType)
	if !ok {
		// Unknown types are still sent, the relay must accept them silently
		def = eventsub.Definition{Type: eventType, Version: "1"}
	}

	d, err := buildDelivery(def, cfg.TargetChannel, targetURL, verification, json.RawMessage(event), time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newDeliveryRequest(ctx, targetURL, secret, d)
	if err != nil {
		return err
	}

	fmt.Printf("Sending %s %s (%s) to %s...\n", d.MessageType, d.Type, d.MessageID, targetURL)

	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return fmt.Errorf("failed to send delivery: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
	if len(body) > 0 {
		fmt.Printf("Body:   %s\n", body)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay answered %d", resp.StatusCode)
	}
	return nil
}

// buildDelivery assembles the body of a notification, or of a verification challenge
func buildDelivery(def eventsub.Definition, channel, callback string, verification bool, event json.RawMessage, now time.Time) (delivery, error) {
	now = now.UTC()
	sub := eventsub.Subscription{
		ID:        uuid.NewString(),
		Status:    eventsub.StatusEnabled,
		Type:      def.Type,
		Version:   def.Version,
		Condition: def.Condition(channel),
		Transport: eventsub.Transport{Method: eventsub.TransportWebhook, Callback: callback},
		CreatedAt: now,
	}

	body := deliveryBody{Subscription: sub}
	msgType := eventsub.Notify
	if verification {
		msgType = eventsub.Verification
		body.Subscription.Status = verificationPending
		body.Challenge = uuid.NewString()
	} else {
		if len(event) == 0 {
			event = sampleEvent(channel, now)
		}
		if !json.Valid(event) {
			return delivery{}, fmt.Errorf("invalid event JSON")
		}
		body.Event = event
	}

	data, err := json.Marshal(body)
	if err != nil {
		return delivery{}, fmt.Errorf("encoding delivery: %w", err)
	}

	return delivery{
		MessageID:   uuid.NewString(),
		Timestamp:   now.Format(time.RFC3339Nano),
		MessageType: msgType,
		Type:        def.Type,
		Version:     def.Version,
		Body:        data,
	}, nil
}

// newDeliveryRequest signs d with secret and sets the upstream delivery headers
func newDeliveryRequest(ctx context.Context, targetURL, secret string, d delivery) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(d.Body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(eventsub.HeaderMessageID, d.MessageID)
	req.Header.Set(eventsub.HeaderMessageTimestamp, d.Timestamp)
	req.Header.Set(eventsub.HeaderMessageSignature, signature.Sign(secret, d.MessageID, d.Timestamp, d.Body))
	req.Header.Set(eventsub.HeaderMessageType, d.MessageType.String())
	req.Header.Set(eventsub.HeaderMessageRetry, "0")
	req.Header.Set(eventsub.HeaderSubscriptionType, d.Type)
	req.Header.Set(eventsub.HeaderSubscriptionVer, d.Version)
	return req, nil
}

func sampleEvent(channel string, now time.Time) json.RawMessage {
	data, _ := json.Marshal(map[string]string{
		"user_id":                "1234",
		"user_login":             "cool_user",
		"user_name":              "Cool_User",
		"broadcaster_user_id":    channel,
		"broadcaster_user_login": "cooler_user",
		"broadcaster_user_name":  "Cooler_User",
		"followed_at":            now.Format(time.RFC3339Nano),
	})
	return data
}
