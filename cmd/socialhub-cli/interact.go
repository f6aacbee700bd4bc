package main

import (
	"context"
	"fmt"

	"github.com/socialhub/socialhub-go/pkg/httpclient"
	"github.com/spf13/cobra"
)

func newFollowCommand() *cobra.Command {
	var (
		rawProfileIDs []int64
		datas         []string
	)

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Follow one or more profiles",
		Long: `Follow one or more profiles as the authenticated address.
Each followed profile mints a follow token. Profiles with a follow module
may require hex-encoded module data per profile via --data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			profileIDs, err := toProfileIDs(rawProfileIDs)
			if err != nil {
				return err
			}

			fmt.Printf("Following %d profile(s)...\n", len(profileIDs))

			resp, err := client.Follow(ctx, httpclient.FollowRequest{
				ProfileIDs: profileIDs,
				Datas:      datas,
			})
			if err != nil {
				return fmt.Errorf("failed to follow: %w", err)
			}

			fmt.Printf("✅ Followed!\n")
			for i, id := range profileIDs {
				if i < len(resp.TokenIDs) {
					fmt.Printf("Profile %d: follow token %d\n", id, resp.TokenIDs[i])
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&rawProfileIDs, "profiles", nil, "Profile IDs to follow (required)")
	cmd.Flags().StringSliceVar(&datas, "data", nil, "Hex-encoded follow module data, one per profile")
	if err := cmd.MarkFlagRequired("profiles"); err != nil {
		panic(fmt.Sprintf("Failed to mark profiles as required: %v", err))
	}

	return cmd
}

func newCollectCommand() *cobra.Command {
	var (
		profileID uint64
		pubID     uint64
		data      string
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect a publication",
		Long: `Collect a publication as the authenticated address. Collecting
through a mirror mints the collect token on the mirrored publication and
credits the mirror's profile as the referrer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuthentication(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			fmt.Printf("Collecting (%d, %d)...\n", profileID, pubID)

			resp, err := client.Collect(ctx, httpclient.CollectRequest{
				ProfileID: profileID,
				PubID:     pubID,
				Data:      data,
			})
			if err != nil {
				return fmt.Errorf("failed to collect: %w", err)
			}

			fmt.Printf("✅ Collected! Token %d on (%d, %d)\n", resp.TokenID, resp.ProfileID, resp.PubID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "profile", 0, "Profile ID of the publication (required)")
	cmd.Flags().Uint64Var(&pubID, "pub", 0, "Publication ID (required)")
	cmd.Flags().StringVar(&data, "data", "", "Hex-encoded collect module data")
	for _, f := range []string{"profile", "pub"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

// toProfileIDs converts the signed slice pflag hands us into profile IDs,
// rejecting negatives.
func toProfileIDs(raw []int64) ([]uint64, error) {
	ids := make([]uint64, 0, len(raw))
	for _, id := range raw {
		if id < 0 {
			return nil, fmt.Errorf("invalid profile ID %d: must be non-negative", id)
		}
		ids = append(ids, uint64(id))
	}
	return ids, nil
}
