package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSignaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "Manage meta-transaction signatures",
		Long:  "Commands for inspecting nonces and revoking outstanding signatures",
	}

	cmd.AddCommand(newNonceCommand())
	cmd.AddCommand(newCancelSignaturesCommand())

	return cmd
}

func newNonceCommand() *cobra.Command {
	var forAddress string

	cmd := &cobra.Command{
		Use:   "nonce",
		Short: "Show the current signing nonce for an address",
		Long: `Show the current meta-transaction nonce for an address. Signatures
must be produced against this nonce to be accepted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			target := forAddress
			if target == "" {
				target = address
			}

			resp, err := client.GetNonce(ctx, target)
			if err != nil {
				return fmt.Errorf("failed to get nonce: %w", err)
			}

			fmt.Printf("Address: %s\n", resp.Address)
			fmt.Printf("Nonce: %d\n", resp.Nonce)
			return nil
		},
	}

	cmd.Flags().StringVar(&forAddress, "for", "", "Address to query (defaults to --address)")

	return cmd
}

func newCancelSignaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Revoke all outstanding signatures",
		Long: `Revoke every signature the authenticated address has issued but not
yet had executed, by bumping its nonce. This works even while the
protocol is paused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			resp, err := client.CancelSignatures(ctx)
			if err != nil {
				return fmt.Errorf("failed to cancel signatures: %w", err)
			}

			fmt.Printf("✅ Outstanding signatures revoked\n")
			fmt.Printf("Address: %s\n", resp.Address)
			fmt.Printf("New nonce: %d\n", resp.NewNonce)
			return nil
		},
	}

	return cmd
}
