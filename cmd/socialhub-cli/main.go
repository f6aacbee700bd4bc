package main

import (
	"fmt"
	"os"
	"time"

	"github.com/socialhub/socialhub-go/pkg/httpclient"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverURL string
	address   string
	token     string
	timeout   time.Duration

	// Global client instance
	client *httpclient.Client
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "socialhub-cli",
		Short: "Social hub HTTP API command line interface",
		Long: `socialhub-cli is a command line interface for the social hub HTTP API.
It provides commands for authentication, profile management, publishing,
following, collecting, governance and real-time event streaming.`,
		PersistentPreRunE: initializeClient,
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8081", "Hub server URL")
	rootCmd.PersistentFlags().StringVar(&address, "address", "", "Wallet address to act as")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "JWT token (if already authenticated)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Add subcommands
	rootCmd.AddCommand(newAuthCommand())
	rootCmd.AddCommand(newProfileCommand())
	rootCmd.AddCommand(newPublishCommand())
	rootCmd.AddCommand(newFollowCommand())
	rootCmd.AddCommand(newCollectCommand())
	rootCmd.AddCommand(newSignCommand())
	rootCmd.AddCommand(newSignaturesCommand())
	rootCmd.AddCommand(newKeygenCommand())
	rootCmd.AddCommand(newStreamCommand())
	rootCmd.AddCommand(newReplayCommand())
	rootCmd.AddCommand(newAdminCommand())
	rootCmd.AddCommand(newHealthCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initializeClient sets up the HTTP client with global configuration
func initializeClient(cmd *cobra.Command, args []string) error {
	// Skip client initialization for help and local-only commands
	if cmd.Name() == "help" || cmd.Name() == "keygen" || cmd.Parent() == nil {
		return nil
	}

	if address == "" {
		return fmt.Errorf("address is required")
	}

	config := httpclient.Config{
		ServerURL: serverURL,
		Address:   address,
		Timeout:   timeout,
	}

	var err error
	client, err = httpclient.NewClient(config)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if token != "" {
		client.SetToken(token)
	}

	return nil
}

// requireAuthentication checks if the client is authenticated
func requireAuthentication() error {
	if client == nil {
		return fmt.Errorf("client not initialized")
	}

	if !client.IsAuthenticated() {
		return fmt.Errorf("not authenticated - run 'socialhub-cli auth' first or provide --token")
	}
	return nil
}
