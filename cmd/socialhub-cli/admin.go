package main

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub-go/pkg/httpclient"
	"github.com/spf13/cobra"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Governance commands (requires the governance address)",
		Long:  "Governance commands for protocol state, whitelists and role changes",
	}

	cmd.AddCommand(newAdminStateCommand())
	cmd.AddCommand(newAdminWhitelistCommand())
	cmd.AddCommand(newAdminGovernanceCommand())
	cmd.AddCommand(newAdminEmergencyAdminCommand())
	cmd.AddCommand(newAdminStatsCommand())

	return cmd
}

func newAdminStateCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Change the protocol state",
		Long: `Change the protocol state. Valid states are Unpaused,
PublishingPaused and Paused. The emergency admin may only escalate;
unpausing requires governance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := client.AdminSetState(ctx, state); err != nil {
				return fmt.Errorf("failed to set state: %w", err)
			}

			fmt.Printf("✅ Protocol state set to %s\n", state)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "New state: Unpaused, PublishingPaused or Paused (required)")
	if err := cmd.MarkFlagRequired("state"); err != nil {
		panic(fmt.Sprintf("Failed to mark state as required: %v", err))
	}

	return cmd
}

func newAdminWhitelistCommand() *cobra.Command {
	var (
		kind        string
		target      string
		whitelisted bool
	)

	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Add or remove a whitelist entry",
		Long: `Add or remove a whitelist entry. Kinds: profile-creator,
follow-module, reference-module, collect-module. Removing an entry does
not disturb existing bindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			err := client.AdminWhitelist(ctx, httpclient.WhitelistRequest{
				Kind:        kind,
				Address:     target,
				Whitelisted: whitelisted,
			})
			if err != nil {
				return fmt.Errorf("failed to update whitelist: %w", err)
			}

			verb := "removed from"
			if whitelisted {
				verb = "added to"
			}
			fmt.Printf("✅ %s %s the %s whitelist\n", target, verb, kind)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Whitelist kind (required)")
	cmd.Flags().StringVar(&target, "target", "", "Address to whitelist (required)")
	cmd.Flags().BoolVar(&whitelisted, "whitelisted", true, "Whitelist (true) or remove (false)")
	for _, f := range []string{"kind", "target"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

func newAdminGovernanceCommand() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Transfer governance to a new address",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := client.AdminSetGovernance(ctx, target); err != nil {
				return fmt.Errorf("failed to set governance: %w", err)
			}

			fmt.Printf("✅ Governance transferred to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "New governance address (required)")
	if err := cmd.MarkFlagRequired("target"); err != nil {
		panic(fmt.Sprintf("Failed to mark target as required: %v", err))
	}

	return cmd
}

func newAdminEmergencyAdminCommand() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "emergency-admin",
		Short: "Set the emergency admin address",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := client.AdminSetEmergencyAdmin(ctx, target); err != nil {
				return fmt.Errorf("failed to set emergency admin: %w", err)
			}

			fmt.Printf("✅ Emergency admin set to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Emergency admin address (zero clears, required)")
	if err := cmd.MarkFlagRequired("target"); err != nil {
		panic(fmt.Sprintf("Failed to mark target as required: %v", err))
	}

	return cmd
}

func newAdminStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show system statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			fmt.Println("Fetching system statistics...")

			resp, err := client.AdminGetStats(ctx)
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			fmt.Printf("\n📊 Hub Statistics:\n\n")
			fmt.Printf("Protocol State: %s\n", resp.State)
			fmt.Printf("Profiles: %d\n", resp.Profiles)
			fmt.Printf("Publications: %d\n", resp.Publications)
			fmt.Printf("Feed End Seq: %d\n", resp.FeedEndSeq)

			return nil
		},
	}

	return cmd
}
