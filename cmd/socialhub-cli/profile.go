package main

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub-go/pkg/httpclient"
	"github.com/spf13/cobra"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
		Long:  "Commands for creating, viewing and mutating profiles",
	}

	cmd.AddCommand(newProfileCreateCommand())
	cmd.AddCommand(newProfileGetCommand())
	cmd.AddCommand(newProfileSetCommand())
	cmd.AddCommand(newProfileTransferCommand())
	cmd.AddCommand(newProfileApproveCommand())
	cmd.AddCommand(newProfileBurnCommand())
	cmd.AddCommand(newProfileDefaultCommand())

	return cmd
}

func newProfileCreateCommand() *cobra.Command {
	var (
		to           string
		handle       string
		imageURI     string
		followModule string
		followNFTURI string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new profile",
		Long: `Create a new profile with a unique handle.
The caller must be a whitelisted profile creator. If --to is omitted,
the profile is minted to the authenticated address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			recipient := to
			if recipient == "" {
				recipient = address
			}

			fmt.Printf("Creating profile '%s' for %s...\n", handle, recipient)

			profile, err := client.CreateProfile(ctx, httpclient.CreateProfileRequest{
				To:           recipient,
				Handle:       handle,
				ImageURI:     imageURI,
				FollowModule: followModule,
				FollowNFTURI: followNFTURI,
			})
			if err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}

			fmt.Printf("✅ Profile created!\n")
			printProfile(profile)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address (defaults to --address)")
	cmd.Flags().StringVar(&handle, "handle", "", "Unique profile handle (required)")
	cmd.Flags().StringVar(&imageURI, "image-uri", "", "Profile image URI")
	cmd.Flags().StringVar(&followModule, "follow-module", "", "Follow module address (optional)")
	cmd.Flags().StringVar(&followNFTURI, "follow-nft-uri", "", "Follow token URI")
	if err := cmd.MarkFlagRequired("handle"); err != nil {
		panic(fmt.Sprintf("Failed to mark handle as required: %v", err))
	}

	return cmd
}

func newProfileGetCommand() *cobra.Command {
	var (
		profileID uint64
		handle    string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a profile by ID or handle",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			var (
				profile *httpclient.ProfileResponse
				err     error
			)
			switch {
			case handle != "":
				profile, err = client.GetProfileByHandle(ctx, handle)
			case profileID != 0:
				profile, err = client.GetProfile(ctx, profileID)
			default:
				return fmt.Errorf("either --id or --handle is required")
			}
			if err != nil {
				return fmt.Errorf("failed to get profile: %w", err)
			}

			printProfile(profile)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "id", 0, "Profile ID")
	cmd.Flags().StringVar(&handle, "handle", "", "Profile handle")

	return cmd
}

func newProfileSetCommand() *cobra.Command {
	var (
		profileID    uint64
		dispatcher   string
		imageURI     string
		followNFTURI string
		followModule string
		initData     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Mutate profile settings",
		Long: `Mutate profile settings. Pass one of --dispatcher, --image-uri,
--follow-nft-uri or --follow-module. The caller must own the profile
(the dispatcher may also change the image and follow token URIs).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			var (
				profile *httpclient.ProfileResponse
				err     error
			)
			switch {
			case cmd.Flags().Changed("dispatcher"):
				profile, err = client.SetDispatcher(ctx, profileID, dispatcher)
			case cmd.Flags().Changed("image-uri"):
				profile, err = client.SetProfileImageURI(ctx, profileID, imageURI)
			case cmd.Flags().Changed("follow-nft-uri"):
				profile, err = client.SetFollowNFTURI(ctx, profileID, followNFTURI)
			case cmd.Flags().Changed("follow-module"):
				profile, err = client.SetFollowModule(ctx, profileID, followModule, initData)
			default:
				return fmt.Errorf("one of --dispatcher, --image-uri, --follow-nft-uri or --follow-module is required")
			}
			if err != nil {
				return err
			}

			fmt.Printf("✅ Profile updated!\n")
			printProfile(profile)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "id", 0, "Profile ID (required)")
	cmd.Flags().StringVar(&dispatcher, "dispatcher", "", "Dispatcher address (empty clears)")
	cmd.Flags().StringVar(&imageURI, "image-uri", "", "Profile image URI")
	cmd.Flags().StringVar(&followNFTURI, "follow-nft-uri", "", "Follow token URI")
	cmd.Flags().StringVar(&followModule, "follow-module", "", "Follow module address (empty clears)")
	cmd.Flags().StringVar(&initData, "init-data", "", "Hex-encoded module init data")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("Failed to mark id as required: %v", err))
	}

	return cmd
}

func newProfileTransferCommand() *cobra.Command {
	var (
		profileID uint64
		to        string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer a profile to a new owner",
		Long: `Transfer a profile to a new owner. The caller must own the profile
or be its approved address. Transferring clears the dispatcher and approval.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			fmt.Printf("Transferring profile %d to %s...\n", profileID, to)

			profile, err := client.TransferProfile(ctx, profileID, to)
			if err != nil {
				return fmt.Errorf("failed to transfer profile: %w", err)
			}

			fmt.Printf("✅ Profile transferred!\n")
			printProfile(profile)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "id", 0, "Profile ID (required)")
	cmd.Flags().StringVar(&to, "to", "", "New owner address (required)")
	for _, f := range []string{"id", "to"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

func newProfileApproveCommand() *cobra.Command {
	var (
		profileID uint64
		approved  string
	)

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve an address to transfer a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			profile, err := client.ApproveProfile(ctx, profileID, approved)
			if err != nil {
				return fmt.Errorf("failed to approve: %w", err)
			}

			fmt.Printf("✅ Approval set!\n")
			printProfile(profile)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "id", 0, "Profile ID (required)")
	cmd.Flags().StringVar(&approved, "approved", "", "Approved address (empty clears)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("Failed to mark id as required: %v", err))
	}

	return cmd
}

func newProfileBurnCommand() *cobra.Command {
	var profileID uint64

	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Burn a profile",
		Long:  "Burn a profile you own. The handle is released for reuse.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := client.BurnProfile(ctx, profileID); err != nil {
				return fmt.Errorf("failed to burn profile: %w", err)
			}

			fmt.Printf("✅ Profile %d burned\n", profileID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "id", 0, "Profile ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("Failed to mark id as required: %v", err))
	}

	return cmd
}

func newProfileDefaultCommand() *cobra.Command {
	var profileID uint64

	cmd := &cobra.Command{
		Use:   "default",
		Short: "Set your default profile",
		Long:  "Set the default profile for the authenticated address. Zero clears.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := client.SetDefaultProfile(ctx, profileID); err != nil {
				return fmt.Errorf("failed to set default profile: %w", err)
			}

			fmt.Printf("✅ Default profile set to %d\n", profileID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "id", 0, "Profile ID (0 clears)")

	return cmd
}

func printProfile(p *httpclient.ProfileResponse) {
	fmt.Printf("Profile ID: %d\n", p.ProfileID)
	fmt.Printf("Handle: %s\n", p.Handle)
	fmt.Printf("Owner: %s\n", p.Owner)
	fmt.Printf("Image URI: %s\n", p.ImageURI)
	fmt.Printf("Follow NFT URI: %s\n", p.FollowNFTURI)
	fmt.Printf("Follow Module: %s\n", p.FollowModule)
	fmt.Printf("Dispatcher: %s\n", p.Dispatcher)
	fmt.Printf("Publications: %d\n", p.PubCount)
}
