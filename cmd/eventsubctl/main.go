package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/marcelsud/twitch-relay/config"
	"github.com/marcelsud/twitch-relay/events"
	"github.com/marcelsud/twitch-relay/eventsub"
	"github.com/marcelsud/twitch-relay/eventsub/helix"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	eventsFile string
	timeout    time.Duration

	// Loaded once per invocation
	cfg *config.Config
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eventsubctl",
		Short: "Manage EventSub subscriptions of the relay",
		Long: `eventsubctl manages the EventSub subscriptions of the relay from the command line
and sends signed test deliveries to a running relay.
Settings are read from the environment or a .env file, like the API server.`,
		PersistentPreRunE: loadConfig,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&eventsFile, "events", "", "Event types YAML file (defaults to EVENTS_FILE or the built-in types)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newSubscribeCommand())
	rootCmd.AddCommand(newUnsubscribeCommand())
	rootCmd.AddCommand(newTriggerCommand())

	return rootCmd
}

// loadConfig reads the configuration shared with the API server
func loadConfig(cmd *cobra.Command, args []string) error {
	// Skip for help commands
	if cmd.Name() == "help" || cmd.Parent() == nil {
		return nil
	}

	var err error
	cfg, err = config.GetConfig()
	if err != nil {
		return err
	}
	if eventsFile == "" {
		eventsFile = cfg.EventsFile
	}
	return nil
}

func loadCatalog() (*events.Loader, error) {
	catalog := events.Default()
	if eventsFile != "" {
		if err := catalog.Load(eventsFile); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// newService builds a service for subscription management only, nothing is broadcast
func newService(ctx context.Context) (*eventsub.Service, error) {
	if err := cfg.ValidateTwitch(); err != nil {
		return nil, err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	api, err := helix.NewClient(ctx, helix.Config{
		ClientID:     cfg.TwitchClientID,
		ClientSecret: cfg.TwitchClientSecret,
		BaseURL:      cfg.TwitchAPIURL,
		TokenURL:     cfg.TwitchTokenURL,
		Timeout:      timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return eventsub.NewService(api, discard{}, catalog, cfg.WebhookSecret, cfg.TargetChannel), nil
}

// discard drops every event, the CLI never relays deliveries itself
type discard struct{}

func (discard) Publish(context.Context, string, string, []byte) error { return nil }

func printSubscription(sub eventsub.Subscription) {
	fmt.Printf("ID:        %s\n", sub.ID)
	fmt.Printf("Type:      %s (v%s)\n", sub.Type, sub.Version)
	fmt.Printf("Status:    %s\n", sub.Status)
	fmt.Printf("Callback:  %s\n", sub.Transport.Callback)
	for key, value := range sub.Condition {
		fmt.Printf("Condition: %s=%s\n", key, value)
	}
	if !sub.CreatedAt.IsZero() {
		fmt.Printf("Created:   %s\n", sub.CreatedAt.Format(time.RFC3339))
	}
}
