package main

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub-go/pkg/httpclient"
	"github.com/spf13/cobra"
)

func newPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Create publications",
		Long:  "Commands for creating posts, comments and mirrors",
	}

	cmd.AddCommand(newPostCommand())
	cmd.AddCommand(newCommentCommand())
	cmd.AddCommand(newMirrorCommand())
	cmd.AddCommand(newPublicationGetCommand())

	return cmd
}

func newPostCommand() *cobra.Command {
	var (
		profileID       uint64
		contentURI      string
		collectModule   string
		collectInit     string
		referenceModule string
		referenceInit   string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish a post",
		Long: `Publish a post from one of your profiles. A collect module is
required; use the revert collect module to make the post uncollectable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			fmt.Printf("Publishing post from profile %d...\n", profileID)

			pub, err := client.Post(ctx, httpclient.PostRequest{
				ProfileID:         profileID,
				ContentURI:        contentURI,
				CollectModule:     collectModule,
				CollectInitData:   collectInit,
				ReferenceModule:   referenceModule,
				ReferenceInitData: referenceInit,
			})
			if err != nil {
				return fmt.Errorf("failed to post: %w", err)
			}

			fmt.Printf("✅ Post created: profile %d, publication %d\n", pub.ProfileID, pub.PubID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "profile", 0, "Publishing profile ID (required)")
	cmd.Flags().StringVar(&contentURI, "content-uri", "", "Content URI (required)")
	cmd.Flags().StringVar(&collectModule, "collect-module", "", "Collect module address (required)")
	cmd.Flags().StringVar(&collectInit, "collect-init", "", "Hex-encoded collect module init data")
	cmd.Flags().StringVar(&referenceModule, "reference-module", "", "Reference module address (optional)")
	cmd.Flags().StringVar(&referenceInit, "reference-init", "", "Hex-encoded reference module init data")
	for _, f := range []string{"profile", "content-uri", "collect-module"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

func newCommentCommand() *cobra.Command {
	var (
		profileID       uint64
		contentURI      string
		pointedProfile  uint64
		pointedPub      uint64
		referenceData   string
		collectModule   string
		collectInit     string
		referenceModule string
		referenceInit   string
	)

	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on a publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			fmt.Printf("Commenting on (%d, %d) from profile %d...\n", pointedProfile, pointedPub, profileID)

			pub, err := client.Comment(ctx, httpclient.CommentRequest{
				ProfileID:         profileID,
				ContentURI:        contentURI,
				PointedProfileID:  pointedProfile,
				PointedPubID:      pointedPub,
				ReferenceData:     referenceData,
				CollectModule:     collectModule,
				CollectInitData:   collectInit,
				ReferenceModule:   referenceModule,
				ReferenceInitData: referenceInit,
			})
			if err != nil {
				return fmt.Errorf("failed to comment: %w", err)
			}

			fmt.Printf("✅ Comment created: profile %d, publication %d\n", pub.ProfileID, pub.PubID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "profile", 0, "Publishing profile ID (required)")
	cmd.Flags().StringVar(&contentURI, "content-uri", "", "Content URI (required)")
	cmd.Flags().Uint64Var(&pointedProfile, "pointed-profile", 0, "Profile ID of the target publication (required)")
	cmd.Flags().Uint64Var(&pointedPub, "pointed-pub", 0, "Publication ID of the target publication (required)")
	cmd.Flags().StringVar(&referenceData, "reference-data", "", "Hex-encoded data for the target's reference module")
	cmd.Flags().StringVar(&collectModule, "collect-module", "", "Collect module address (required)")
	cmd.Flags().StringVar(&collectInit, "collect-init", "", "Hex-encoded collect module init data")
	cmd.Flags().StringVar(&referenceModule, "reference-module", "", "Reference module address (optional)")
	cmd.Flags().StringVar(&referenceInit, "reference-init", "", "Hex-encoded reference module init data")
	for _, f := range []string{"profile", "content-uri", "pointed-profile", "pointed-pub", "collect-module"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

func newMirrorCommand() *cobra.Command {
	var (
		profileID       uint64
		pointedProfile  uint64
		pointedPub      uint64
		referenceData   string
		referenceModule string
		referenceInit   string
	)

	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Mirror a publication",
		Long: `Mirror (repost) a publication. Mirrors of mirrors collapse to the
original post or comment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			fmt.Printf("Mirroring (%d, %d) from profile %d...\n", pointedProfile, pointedPub, profileID)

			pub, err := client.Mirror(ctx, httpclient.MirrorRequest{
				ProfileID:         profileID,
				PointedProfileID:  pointedProfile,
				PointedPubID:      pointedPub,
				ReferenceData:     referenceData,
				ReferenceModule:   referenceModule,
				ReferenceInitData: referenceInit,
			})
			if err != nil {
				return fmt.Errorf("failed to mirror: %w", err)
			}

			fmt.Printf("✅ Mirror created: profile %d, publication %d\n", pub.ProfileID, pub.PubID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "profile", 0, "Publishing profile ID (required)")
	cmd.Flags().Uint64Var(&pointedProfile, "pointed-profile", 0, "Profile ID of the target publication (required)")
	cmd.Flags().Uint64Var(&pointedPub, "pointed-pub", 0, "Publication ID of the target publication (required)")
	cmd.Flags().StringVar(&referenceData, "reference-data", "", "Hex-encoded data for the target's reference module")
	cmd.Flags().StringVar(&referenceModule, "reference-module", "", "Reference module address (optional)")
	cmd.Flags().StringVar(&referenceInit, "reference-init", "", "Hex-encoded reference module init data")
	for _, f := range []string{"profile", "pointed-profile", "pointed-pub"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

func newPublicationGetCommand() *cobra.Command {
	var (
		profileID uint64
		pubID     uint64
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			pub, err := client.GetPublication(ctx, profileID, pubID)
			if err != nil {
				return fmt.Errorf("failed to get publication: %w", err)
			}

			fmt.Printf("Publication (%d, %d):\n", pub.ProfileID, pub.PubID)
			fmt.Printf("Type: %s\n", pub.Type)
			fmt.Printf("Content URI: %s\n", pub.ContentURI)
			if pub.PointedProfileID != 0 || pub.PointedPubID != 0 {
				fmt.Printf("Points at: (%d, %d)\n", pub.PointedProfileID, pub.PointedPubID)
			}
			fmt.Printf("Collect Module: %s\n", pub.CollectModule)
			fmt.Printf("Reference Module: %s\n", pub.ReferenceModule)
			fmt.Printf("Collected: %d times\n", pub.CollectTokensMinted)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "profile", 0, "Profile ID (required)")
	cmd.Flags().Uint64Var(&pubID, "pub", 0, "Publication ID (required)")
	for _, f := range []string{"profile", "pub"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}
