package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/twitch-relay/events"
)

/* validate-events - Standalone CLI tool to validate events.yaml
 * Usage: go run cmd/validate-events/main.go [events.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	// Get events file path from args or use default
	eventsFile := "events.yaml"
	if len(os.Args) > 1 {
		eventsFile = os.Args[1]
	}

	fmt.Printf("Validating events file: %s\n", eventsFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := events.NewLoader()
	if err := loader.Load(eventsFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Success - print loaded event types
	loaded := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d event type(s):\n", len(loaded))

	for i, et := range loaded {
		fmt.Printf("\n%d. Type: %s\n", i+1, et.Type)
		fmt.Printf("   Version:   %s\n", et.Version)
		fmt.Printf("   Condition: %s\n", strings.Join(et.ConditionKeys, ", "))
	}

	fmt.Printf("\n✓ All event types are valid!\n")
	os.Exit(0)
}
