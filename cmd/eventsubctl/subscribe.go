package main

import (
	"context"
	"fmt"

	"github.com/marcelsud/twitch-relay/events"
	"github.com/marcelsud/twitch-relay/eventsub"
	"github.com/spf13/cobra"
)

func newSubscribeCommand() *cobra.Command {
	return newManageCommand(eventsub.Subscribe, "Subscribe to an event type",
		`Create the EventSub subscription for an event type, delivered to the callback URL.
The upstream sends a verification request to the callback right away, so the relay
must already be reachable there.`)
}

func newUnsubscribeCommand() *cobra.Command {
	return newManageCommand(eventsub.Unsubscribe, "Unsubscribe from an event type",
		"Delete the enabled EventSub subscription of an event type")
}

func newManageCommand(action eventsub.Action, short, long string) *cobra.Command {
	var (
		eventType string
		callback  string
	)

	cmd := &cobra.Command{
		Use:   action.String(),
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManage(action, eventType, callback)
		},
	}

	cmd.Flags().StringVar(&eventType, "type", events.ChannelFollow, "Event type")
	if action == eventsub.Subscribe {
		cmd.Flags().StringVar(&callback, "callback", "", "Callback URL (defaults to CALLBACK_URL)")
	}

	return cmd
}

func runManage(action eventsub.Action, eventType, callback string) error {
	if callback == "" {
		callback = cfg.CallbackURL
	}
	if action == eventsub.Subscribe && callback == "" {
		return fmt.Errorf("callback URL is required: set --callback or CALLBACK_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s, err := newService(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Requesting %s for %s...\n", action, eventType)

	sub, err := s.Manage(ctx, action.String(), eventType, callback)
	if err != nil {
		return fmt.Errorf("%s failed: %w", action, err)
	}

	fmt.Printf("✅ %s succeeded!\n", action)
	printSubscription(sub)
	return nil
}
