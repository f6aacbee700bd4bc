package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/socialhub/socialhub-go/internal/hubnode"
	"github.com/socialhub/socialhub-go/internal/sigauth"
	"github.com/socialhub/socialhub-go/pkg/hub"
	"github.com/socialhub/socialhub-go/pkg/httpclient"
)

// Signing flags shared by every sign subcommand.
var (
	signKeyHex        string
	signHubAddr       string
	signChainID       uint64
	signDomainName    string
	signDomainVersion string
	signValidity      time.Duration
)

func newSignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a meta-transaction locally and relay it",
		Long: `Sign a meta-transaction with a local private key and relay it to the
hub. The key never leaves this machine: the command fetches the signer's
current nonce, builds the typed-data digest over the action, signs it, and
posts the payload to the relayer endpoints. No login token is needed; the
signature authorizes the call.

The signing domain must match the hub deployment, so --hub and --chain-id
have to agree with the server's configuration.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, signer, err := loadSigningKey()
			if err != nil {
				return err
			}
			if address == "" {
				address = signer.Hex()
			}
			return initializeClient(cmd, args)
		},
	}

	cmd.PersistentFlags().StringVar(&signKeyHex, "key", "", "Hex-encoded private key to sign with (required)")
	cmd.PersistentFlags().StringVar(&signHubAddr, "hub", "", "Hub address of the deployment (required)")
	cmd.PersistentFlags().Uint64Var(&signChainID, "chain-id", 1, "Chain ID of the deployment")
	cmd.PersistentFlags().StringVar(&signDomainName, "domain-name", hubnode.DefaultSignerDomainName, "Signing domain name")
	cmd.PersistentFlags().StringVar(&signDomainVersion, "domain-version", hubnode.DefaultSignerDomainVersion, "Signing domain version")
	cmd.PersistentFlags().DurationVar(&signValidity, "validity", 30*time.Minute, "How long the signature stays valid")
	for _, f := range []string{"key", "hub"} {
		if err := cmd.MarkPersistentFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	cmd.AddCommand(newSignPostCommand())
	cmd.AddCommand(newSignFollowCommand())
	cmd.AddCommand(newSignCollectCommand())
	cmd.AddCommand(newSignSetDispatcherCommand())
	cmd.AddCommand(newSignBurnCommand())

	return cmd
}

// loadSigningKey parses the --key flag and derives the signer address.
func loadSigningKey() (*ecdsa.PrivateKey, common.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(signKeyHex, "0x"))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}
	return key, crypto.PubkeyToAddress(key.PublicKey), nil
}

// signingDomain builds the typed-data domain from the sign flags.
func signingDomain() (sigauth.Domain, error) {
	if !common.IsHexAddress(signHubAddr) {
		return sigauth.Domain{}, fmt.Errorf("invalid hub address: %s", signHubAddr)
	}
	return sigauth.Domain{
		Name:    signDomainName,
		Version: signDomainVersion,
		ChainID: signChainID,
		Hub:     common.HexToAddress(signHubAddr),
	}, nil
}

// produceSignature fetches the signer's nonce, signs the action's digest and
// returns the wire-format signature input.
func produceSignature(ctx context.Context, action sigauth.StructHasher) (httpclient.SignatureInput, common.Address, error) {
	key, signer, err := loadSigningKey()
	if err != nil {
		return httpclient.SignatureInput{}, common.Address{}, err
	}
	domain, err := signingDomain()
	if err != nil {
		return httpclient.SignatureInput{}, common.Address{}, err
	}

	nonceResp, err := client.GetNonce(ctx, signer.Hex())
	if err != nil {
		return httpclient.SignatureInput{}, common.Address{}, err
	}

	deadline := uint64(time.Now().Add(signValidity).Unix())
	digest := domain.Digest(action.StructHash(nonceResp.Nonce, deadline))
	sigBytes, err := crypto.Sign(digest[:], key)
	if err != nil {
		return httpclient.SignatureInput{}, common.Address{}, fmt.Errorf("failed to sign digest: %w", err)
	}

	return httpclient.SignatureInput{
		Signature: hexutil.Encode(sigBytes),
		Deadline:  deadline,
	}, signer, nil
}

// parseOptionalAddress parses a flag that may be empty, meaning no module.
func parseOptionalAddress(flag, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s address: %s", flag, value)
	}
	return common.HexToAddress(value), nil
}

// parseOptionalHex decodes a flag that may be empty, meaning no data.
func parseOptionalHex(flag, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	raw, err := hexutil.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s data: %w", flag, err)
	}
	return raw, nil
}

func newSignPostCommand() *cobra.Command {
	var req httpclient.PostRequest

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Sign and relay a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			collectModule, err := parseOptionalAddress("collect-module", req.CollectModule)
			if err != nil {
				return err
			}
			referenceModule, err := parseOptionalAddress("reference-module", req.ReferenceModule)
			if err != nil {
				return err
			}
			collectInit, err := parseOptionalHex("collect-init-data", req.CollectInitData)
			if err != nil {
				return err
			}
			referenceInit, err := parseOptionalHex("reference-init-data", req.ReferenceInitData)
			if err != nil {
				return err
			}

			action := sigauth.PostAction{Input: hub.PostInput{
				ProfileID:         req.ProfileID,
				ContentURI:        req.ContentURI,
				CollectModule:     collectModule,
				CollectInitData:   collectInit,
				ReferenceModule:   referenceModule,
				ReferenceInitData: referenceInit,
			}}
			sig, signer, err := produceSignature(ctx, action)
			if err != nil {
				return err
			}

			body := struct {
				httpclient.PostRequest
				Sig httpclient.SignatureInput `json:"sig"`
			}{PostRequest: req, Sig: sig}

			var resp httpclient.PublicationCreatedResponse
			if err := client.RelaySigned(ctx, "post", body, &resp); err != nil {
				return err
			}

			fmt.Printf("✅ Post relayed for %s: profile %d, publication %d\n", signer.Hex(), resp.ProfileID, resp.PubID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&req.ProfileID, "profile", 0, "Profile ID to publish from (required)")
	cmd.Flags().StringVar(&req.ContentURI, "content-uri", "", "Content URI (required)")
	cmd.Flags().StringVar(&req.CollectModule, "collect-module", "", "Collect module address (required)")
	cmd.Flags().StringVar(&req.CollectInitData, "collect-init-data", "", "Hex-encoded collect module init data")
	cmd.Flags().StringVar(&req.ReferenceModule, "reference-module", "", "Reference module address")
	cmd.Flags().StringVar(&req.ReferenceInitData, "reference-init-data", "", "Hex-encoded reference module init data")
	for _, f := range []string{"profile", "content-uri", "collect-module"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

func newSignFollowCommand() *cobra.Command {
	var (
		rawProfileIDs []int64
		datas         []string
	)

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Sign and relay a follow",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			profileIDs, err := toProfileIDs(rawProfileIDs)
			if err != nil {
				return err
			}
			moduleDatas := make([][]byte, len(profileIDs))
			for i := range profileIDs {
				if i < len(datas) {
					moduleDatas[i], err = parseOptionalHex("data", datas[i])
					if err != nil {
						return err
					}
				}
			}

			_, signer, err := loadSigningKey()
			if err != nil {
				return err
			}
			action := sigauth.FollowAction{
				Follower:   signer,
				ProfileIDs: profileIDs,
				Datas:      moduleDatas,
			}
			sig, signer, err := produceSignature(ctx, action)
			if err != nil {
				return err
			}

			body := struct {
				Follower string `json:"follower"`
				httpclient.FollowRequest
				Sig httpclient.SignatureInput `json:"sig"`
			}{
				Follower:      signer.Hex(),
				FollowRequest: httpclient.FollowRequest{ProfileIDs: profileIDs, Datas: datas},
				Sig:           sig,
			}

			var resp httpclient.FollowResponse
			if err := client.RelaySigned(ctx, "follow", body, &resp); err != nil {
				return err
			}

			fmt.Printf("✅ Follow relayed for %s\n", signer.Hex())
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

func newSignCollectCommand() *cobra.Command {
	var req httpclient.CollectRequest

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Sign and relay a collect",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			data, err := parseOptionalHex("data", req.Data)
			if err != nil {
				return err
			}

			_, signer, err := loadSigningKey()
			if err != nil {
				return err
			}
			action := sigauth.CollectAction{
				Collector: signer,
				ProfileID: req.ProfileID,
				PubID:     req.PubID,
				Data:      data,
			}
			sig, signer, err := produceSignature(ctx, action)
			if err != nil {
				return err
			}

			body := struct {
				Collector string `json:"collector"`
				httpclient.CollectRequest
				Sig httpclient.SignatureInput `json:"sig"`
			}{
				Collector:      signer.Hex(),
				CollectRequest: req,
				Sig:            sig,
			}

			var resp httpclient.CollectResponse
			if err := client.RelaySigned(ctx, "collect", body, &resp); err != nil {
				return err
			}

			fmt.Printf("✅ Collect relayed for %s: token %d on (%d, %d)\n", signer.Hex(), resp.TokenID, resp.ProfileID, resp.PubID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&req.ProfileID, "profile", 0, "Profile ID of the publication (required)")
	cmd.Flags().Uint64Var(&req.PubID, "pub", 0, "Publication ID (required)")
	cmd.Flags().StringVar(&req.Data, "data", "", "Hex-encoded collect module data")
	for _, f := range []string{"profile", "pub"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("Failed to mark %s as required: %v", f, err))
		}
	}

	return cmd
}

func newSignSetDispatcherCommand() *cobra.Command {
	var (
		profileID  uint64
		dispatcher string
	)

	cmd := &cobra.Command{
		Use:   "set-dispatcher",
		Short: "Sign and relay a dispatcher change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			dispatcherAddr, err := parseOptionalAddress("dispatcher", dispatcher)
			if err != nil {
				return err
			}

			action := sigauth.SetDispatcherAction{
				ProfileID:  profileID,
				Dispatcher: dispatcherAddr,
			}
			sig, signer, err := produceSignature(ctx, action)
			if err != nil {
				return err
			}

			body := struct {
				ProfileID  uint64                    `json:"profileId"`
				Dispatcher string                    `json:"dispatcher"`
				Sig        httpclient.SignatureInput `json:"sig"`
			}{ProfileID: profileID, Dispatcher: dispatcher, Sig: sig}

			var resp httpclient.ProfileResponse
			if err := client.RelaySigned(ctx, "set-dispatcher", body, &resp); err != nil {
				return err
			}

			fmt.Printf("✅ Dispatcher relayed for %s: profile %d now dispatches to %s\n", signer.Hex(), resp.ProfileID, resp.Dispatcher)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "profile", 0, "Profile ID (required)")
	cmd.Flags().StringVar(&dispatcher, "dispatcher", "", "Dispatcher address (empty clears it)")
	if err := cmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("Failed to mark profile as required: %v", err))
	}

	return cmd
}

func newSignBurnCommand() *cobra.Command {
	var profileID uint64

	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Sign and relay a profile burn",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			action := sigauth.BurnAction{ProfileID: profileID}
			sig, signer, err := produceSignature(ctx, action)
			if err != nil {
				return err
			}

			body := struct {
				ProfileID uint64                    `json:"profileId"`
				Sig       httpclient.SignatureInput `json:"sig"`
			}{ProfileID: profileID, Sig: sig}

			if err := client.RelaySigned(ctx, "burn", body, nil); err != nil {
				return err
			}

			fmt.Printf("✅ Burn relayed for %s: profile %d burned\n", signer.Hex(), profileID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&profileID, "profile", 0, "Profile ID to burn (required)")
	if err := cmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("Failed to mark profile as required: %v", err))
	}

	return cmd
}
