package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enabled subscriptions",
		Long:  "List every enabled EventSub subscription of the application",
		RunE:  runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s, err := newService(ctx)
	if err != nil {
		return err
	}

	subs, err := s.List(ctx)
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		fmt.Println("No enabled subscriptions.")
		return nil
	}

	fmt.Printf("%d enabled subscription(s):\n", len(subs))
	for i, sub := range subs {
		fmt.Printf("\n%d.\n", i+1)
		printSubscription(sub)
	}
	return nil
}
