package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newReplayCommand() *cobra.Command {
	var (
		from         uint64
		limit        int
		prettyFormat bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay protocol events from a sequence number",
		Long: `Replay protocol events starting at a specific sequence number.
This command fetches historical events from the feed and displays them.
Unlike 'stream', this command fetches a batch of events and exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(from, limit, prettyFormat)
		},
	}

	cmd.Flags().Uint64Var(&from, "from", 0, "Starting sequence number (default: 0)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of events to retrieve (default: 100, max: 1000)")
	cmd.Flags().BoolVar(&prettyFormat, "pretty", false, "Pretty print JSON payloads")

	return cmd
}

func runReplay(from uint64, limit int, prettyFormat bool) error {
	ctx := context.Background()

	fmt.Printf("🔄 Replaying events (from: %d, limit: %d)...\n", from, limit)

	response, err := client.ReadEvents(ctx, from, limit)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	fmt.Printf("📋 Found %d events (requested from: %d, actual start: %d)\n\n",
		response.Count, from, response.StartSeq)

	if len(response.Events) == 0 {
		fmt.Printf("🔍 No events found starting from sequence %d\n", from)
		return nil
	}

	for i, event := range response.Events {
		printEvent(event, i+1, prettyFormat)
	}

	fmt.Printf("✅ Replay completed: %d events\n", len(response.Events))
	return nil
}
