// Package hubnode implements the hub facade: the single component that owns
// the ledger, checks protocol-state gates and caller authorization, runs the
// publishing and interaction logic inside a transaction, and publishes the
// resulting events to the feed.
//
// Mutating entrypoints are strictly serialized by one mutex, matching the
// protocol's serial execution model. Views read the ledger directly and are
// never gated.
package hubnode

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/socialhub/socialhub-go/internal/feed"
	"github.com/socialhub/socialhub-go/internal/interaction"
	internalmodules "github.com/socialhub/socialhub-go/internal/modules"
	"github.com/socialhub/socialhub-go/internal/publishing"
	"github.com/socialhub/socialhub-go/internal/sigauth"
	"github.com/socialhub/socialhub-go/internal/state"
	"github.com/socialhub/socialhub-go/internal/store"
	feedpkg "github.com/socialhub/socialhub-go/pkg/feed"
	"github.com/socialhub/socialhub-go/pkg/hub"
	"github.com/socialhub/socialhub-go/pkg/modules"
)

// Node implements the hub.Hub interface over an in-memory ledger, a module
// registry, a signature verifier and the protocol event feed.
type Node struct {
	mu     sync.Mutex
	config *Config

	ledger   *store.Ledger
	registry *modules.Registry
	verifier *sigauth.Verifier
	feed     feedpkg.Feed
	env      publishing.Env

	log     zerolog.Logger
	metrics *metrics

	closed bool
}

// Compile-time interface checks.
var (
	_ hub.Hub                 = (*Node)(nil)
	_ internalmodules.HubView = (*Node)(nil)
)

// NewNode creates a hub node from the given configuration. The ledger starts
// in the Paused state; governance sets the state after wiring modules and
// whitelists.
func NewNode(config *Config) (*Node, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ledger := store.NewLedger(config.Governance)
	registry := modules.NewRegistry()
	verifier := sigauth.NewVerifier(ledger, sigauth.Domain{
		Name:    config.SignerDomainName,
		Version: config.SignerDomainVersion,
		ChainID: config.ChainID,
		Hub:     config.HubAddress,
	})

	return &Node{
		config:   config,
		ledger:   ledger,
		registry: registry,
		verifier: verifier,
		feed:     feed.NewInMemoryFeed(),
		env: publishing.Env{
			Registry: registry,
			HubAddr:  config.HubAddress,
		},
		log:     config.Logger.With().Str("component", "hubnode").Logger(),
		metrics: newMetrics(config.Registerer),
	}, nil
}

// Close shuts the node down, closing the event feed. Idempotent.
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.feed.Close()
}

// Feed exposes the protocol event feed for streaming and replay.
func (n *Node) Feed() feedpkg.Feed {
	return n.feed
}

// Registry exposes the module registry for deployment wiring.
func (n *Node) Registry() *modules.Registry {
	return n.registry
}

// SignerDomain returns the typed-data signing domain of this deployment.
func (n *Node) SignerDomain() sigauth.Domain {
	return n.verifier.Domain()
}

// HubAddress returns the hub's own address.
func (n *Node) HubAddress() common.Address {
	return n.config.HubAddress
}

// Health reports a point-in-time health snapshot.
type Health struct {
	Healthy      bool              `json:"healthy"`
	State        hub.ProtocolState `json:"state"`
	Profiles     int               `json:"profiles"`
	Publications int               `json:"publications"`
	FeedEndSeq   uint64            `json:"feedEndSeq"`
}

// GetHealth returns the node's health snapshot.
func (n *Node) GetHealth(ctx context.Context) (Health, error) {
	n.mu.Lock()
	closed := n.closed
	n.mu.Unlock()

	endSeq, err := n.feed.EndSeq(ctx)
	if err != nil {
		return Health{}, err
	}
	profiles, pubs := n.ledger.Counts()
	return Health{
		Healthy:      !closed,
		State:        n.ledger.State(),
		Profiles:     profiles,
		Publications: pubs,
		FeedEndSeq:   endSeq,
	}, nil
}

// exec runs one mutating entrypoint: serialize, check the state gate, run the
// logic inside a transaction, commit, and publish the buffered events. The
// transaction is discarded wholesale on any error, so failed operations leave
// no partial state (apart from signature nonces, which are consumed against
// the ledger directly).
func (n *Node) exec(ctx context.Context, op string, gate state.Gate, fn func(txn *store.Txn) error) (err error) {
	defer func() {
		n.metrics.recordOp(op, err)
		if err != nil {
			n.log.Debug().Str("op", op).Err(err).Msg("operation rejected")
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return fmt.Errorf("hub node is closed")
	}
	if err := state.Check(n.ledger.State(), gate); err != nil {
		return err
	}

	txn := n.ledger.Begin()
	if err := fn(txn); err != nil {
		return err
	}

	events := txn.Commit()
	if len(events) > 0 {
		if _, err := n.feed.Append(ctx, events...); err != nil {
			// State is already durable; a feed failure must not fail the
			// operation. Indexers recover via replay.
			n.log.Error().Str("op", op).Err(err).Msg("failed to publish events")
		} else {
			n.metrics.recordEvents(len(events))
		}
	}
	return nil
}

// requireExistingOwner resolves a profile's owner, failing for unknown or
// burned profiles.
func requireExistingOwner(txn *store.Txn, profileID uint64) (common.Address, error) {
	owner := txn.Owner(profileID)
	if owner == (common.Address{}) {
		return common.Address{}, hub.ErrProfileDoesNotExist
	}
	return owner, nil
}

func requireOwner(txn *store.Txn, caller common.Address, profileID uint64) error {
	owner, err := requireExistingOwner(txn, profileID)
	if err != nil {
		return err
	}
	if caller != owner {
		return hub.ErrNotProfileOwner
	}
	return nil
}

func requireOwnerOrDispatcher(txn *store.Txn, caller common.Address, profileID uint64) error {
	owner, err := requireExistingOwner(txn, profileID)
	if err != nil {
		return err
	}
	if caller != owner && caller != txn.Dispatcher(profileID) {
		return hub.ErrNotProfileOwnerOrDispatcher
	}
	return nil
}

func requireOwnerOrApproved(txn *store.Txn, caller common.Address, profileID uint64) error {
	owner, err := requireExistingOwner(txn, profileID)
	if err != nil {
		return err
	}
	if caller != owner && caller != txn.Approved(profileID) {
		return hub.ErrNotOwnerOrApproved
	}
	return nil
}

// --- Profile lifecycle ---

// CreateProfile mints a new profile owned by input.To.
func (n *Node) CreateProfile(ctx context.Context, caller common.Address, input hub.CreateProfileInput) (uint64, error) {
	var profileID uint64
	err := n.exec(ctx, "CreateProfile", state.GateNotPaused, func(txn *store.Txn) error {
		var err error
		profileID, err = publishing.CreateProfile(txn, n.env, caller, input)
		return err
	})
	if err != nil {
		return 0, err
	}
	n.log.Info().Uint64("profileId", profileID).Str("handle", input.Handle).Msg("profile created")
	return profileID, nil
}

// SetFollowModule rebinds a profile's follow module. Owner only.
func (n *Node) SetFollowModule(ctx context.Context, caller common.Address, profileID uint64, followModule common.Address, initData []byte) error {
	return n.exec(ctx, "SetFollowModule", state.GateNotPaused, func(txn *store.Txn) error {
		if err := requireOwner(txn, caller, profileID); err != nil {
			return err
		}
		return publishing.SetFollowModule(txn, n.env, profileID, followModule, initData)
	})
}

// SetFollowModuleWithSig is SetFollowModule authorized by the owner's signature.
func (n *Node) SetFollowModuleWithSig(ctx context.Context, profileID uint64, followModule common.Address, initData []byte, sig hub.Signature) error {
	return n.exec(ctx, "SetFollowModuleWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, profileID)
		if err != nil {
			return err
		}
		action := sigauth.SetFollowModuleAction{ProfileID: profileID, FollowModule: followModule, InitData: initData}
		if err := n.verifier.Verify(action, owner, sig); err != nil {
			return err
		}
		return publishing.SetFollowModule(txn, n.env, profileID, followModule, initData)
	})
}

// SetDispatcher sets or clears a profile's dispatcher. Owner only.
func (n *Node) SetDispatcher(ctx context.Context, caller common.Address, profileID uint64, dispatcher common.Address) error {
	return n.exec(ctx, "SetDispatcher", state.GateNotPaused, func(txn *store.Txn) error {
		if err := requireOwner(txn, caller, profileID); err != nil {
			return err
		}
		publishing.SetDispatcher(txn, profileID, dispatcher)
		return nil
	})
}

// SetDispatcherWithSig is SetDispatcher authorized by the owner's signature.
func (n *Node) SetDispatcherWithSig(ctx context.Context, profileID uint64, dispatcher common.Address, sig hub.Signature) error {
	return n.exec(ctx, "SetDispatcherWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, profileID)
		if err != nil {
			return err
		}
		action := sigauth.SetDispatcherAction{ProfileID: profileID, Dispatcher: dispatcher}
		if err := n.verifier.Verify(action, owner, sig); err != nil {
			return err
		}
		publishing.SetDispatcher(txn, profileID, dispatcher)
		return nil
	})
}

// SetProfileImageURI updates the profile image. Owner or dispatcher.
func (n *Node) SetProfileImageURI(ctx context.Context, caller common.Address, profileID uint64, imageURI string) error {
	return n.exec(ctx, "SetProfileImageURI", state.GateNotPaused, func(txn *store.Txn) error {
		if err := requireOwnerOrDispatcher(txn, caller, profileID); err != nil {
			return err
		}
		return publishing.SetProfileImageURI(txn, profileID, imageURI)
	})
}

// SetProfileImageURIWithSig is SetProfileImageURI authorized by the owner's
// signature.
func (n *Node) SetProfileImageURIWithSig(ctx context.Context, profileID uint64, imageURI string, sig hub.Signature) error {
	return n.exec(ctx, "SetProfileImageURIWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, profileID)
		if err != nil {
			return err
		}
		action := sigauth.SetProfileImageURIAction{ProfileID: profileID, ImageURI: imageURI}
		if err := n.verifier.Verify(action, owner, sig); err != nil {
			return err
		}
		return publishing.SetProfileImageURI(txn, profileID, imageURI)
	})
}

// SetFollowNFTURI updates the follow token metadata URI. Owner or dispatcher.
func (n *Node) SetFollowNFTURI(ctx context.Context, caller common.Address, profileID uint64, followNFTURI string) error {
	return n.exec(ctx, "SetFollowNFTURI", state.GateNotPaused, func(txn *store.Txn) error {
		if err := requireOwnerOrDispatcher(txn, caller, profileID); err != nil {
			return err
		}
		return publishing.SetFollowNFTURI(txn, profileID, followNFTURI)
	})
}

// SetFollowNFTURIWithSig is SetFollowNFTURI authorized by the owner's
// signature.
func (n *Node) SetFollowNFTURIWithSig(ctx context.Context, profileID uint64, followNFTURI string, sig hub.Signature) error {
	return n.exec(ctx, "SetFollowNFTURIWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, profileID)
		if err != nil {
			return err
		}
		action := sigauth.SetFollowNFTURIAction{ProfileID: profileID, FollowNFTURI: followNFTURI}
		if err := n.verifier.Verify(action, owner, sig); err != nil {
			return err
		}
		return publishing.SetFollowNFTURI(txn, profileID, followNFTURI)
	})
}

// SetDefaultProfile binds the caller's default profile.
func (n *Node) SetDefaultProfile(ctx context.Context, caller common.Address, profileID uint64) error {
	return n.exec(ctx, "SetDefaultProfile", state.GateNotPaused, func(txn *store.Txn) error {
		return publishing.SetDefaultProfile(txn, caller, profileID)
	})
}

// SetDefaultProfileWithSig is SetDefaultProfile authorized by the wallet's
// signature.
func (n *Node) SetDefaultProfileWithSig(ctx context.Context, wallet common.Address, profileID uint64, sig hub.Signature) error {
	return n.exec(ctx, "SetDefaultProfileWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		action := sigauth.SetDefaultProfileAction{Wallet: wallet, ProfileID: profileID}
		if err := n.verifier.Verify(action, wallet, sig); err != nil {
			return err
		}
		return publishing.SetDefaultProfile(txn, wallet, profileID)
	})
}

// TransferProfile moves profile ownership. Owner or approved address.
func (n *Node) TransferProfile(ctx context.Context, caller common.Address, profileID uint64, to common.Address) error {
	return n.exec(ctx, "TransferProfile", state.GateNotPaused, func(txn *store.Txn) error {
		if err := requireOwnerOrApproved(txn, caller, profileID); err != nil {
			return err
		}
		from := txn.Owner(profileID)
		publishing.Transfer(txn, profileID, from, to)
		return nil
	})
}

// ApproveProfile sets the single approved operator for a profile. Owner only.
func (n *Node) ApproveProfile(ctx context.Context, caller common.Address, profileID uint64, approved common.Address) error {
	return n.exec(ctx, "ApproveProfile", state.GateNotPaused, func(txn *store.Txn) error {
		if err := requireOwner(txn, caller, profileID); err != nil {
			return err
		}
		txn.SetApproved(profileID, approved)
		return nil
	})
}

// BurnProfile burns a profile, releasing its handle. Owner or approved.
func (n *Node) BurnProfile(ctx context.Context, caller common.Address, profileID uint64) error {
	return n.exec(ctx, "BurnProfile", state.GateNotPaused, func(txn *store.Txn) error {
		if err := requireOwnerOrApproved(txn, caller, profileID); err != nil {
			return err
		}
		owner := txn.Owner(profileID)
		return publishing.Burn(txn, profileID, owner)
	})
}

// BurnProfileWithSig is BurnProfile authorized by the owner's signature.
func (n *Node) BurnProfileWithSig(ctx context.Context, profileID uint64, sig hub.Signature) error {
	return n.exec(ctx, "BurnProfileWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, profileID)
		if err != nil {
			return err
		}
		if err := n.verifier.Verify(sigauth.BurnAction{ProfileID: profileID}, owner, sig); err != nil {
			return err
		}
		return publishing.Burn(txn, profileID, owner)
	})
}

// --- Publishing ---

// Post creates a post. Owner or dispatcher.
func (n *Node) Post(ctx context.Context, caller common.Address, input hub.PostInput) (uint64, error) {
	var pubID uint64
	err := n.exec(ctx, "Post", state.GatePublishingEnabled, func(txn *store.Txn) error {
		if err := requireOwnerOrDispatcher(txn, caller, input.ProfileID); err != nil {
			return err
		}
		var err error
		pubID, err = publishing.CreatePost(txn, n.env, input)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pubID, nil
}

// PostWithSig is Post authorized by the profile owner's signature.
func (n *Node) PostWithSig(ctx context.Context, input hub.PostInput, sig hub.Signature) (uint64, error) {
	var pubID uint64
	err := n.exec(ctx, "PostWithSig", state.GatePublishingEnabled, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, input.ProfileID)
		if err != nil {
			return err
		}
		if err := n.verifier.Verify(sigauth.PostAction{Input: input}, owner, sig); err != nil {
			return err
		}
		pubID, err = publishing.CreatePost(txn, n.env, input)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pubID, nil
}

// Comment creates a comment. Owner or dispatcher.
func (n *Node) Comment(ctx context.Context, caller common.Address, input hub.CommentInput) (uint64, error) {
	var pubID uint64
	err := n.exec(ctx, "Comment", state.GatePublishingEnabled, func(txn *store.Txn) error {
		if err := requireOwnerOrDispatcher(txn, caller, input.ProfileID); err != nil {
			return err
		}
		var err error
		pubID, err = publishing.CreateComment(txn, n.env, input)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pubID, nil
}

// CommentWithSig is Comment authorized by the profile owner's signature.
func (n *Node) CommentWithSig(ctx context.Context, input hub.CommentInput, sig hub.Signature) (uint64, error) {
	var pubID uint64
	err := n.exec(ctx, "CommentWithSig", state.GatePublishingEnabled, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, input.ProfileID)
		if err != nil {
			return err
		}
		if err := n.verifier.Verify(sigauth.CommentAction{Input: input}, owner, sig); err != nil {
			return err
		}
		pubID, err = publishing.CreateComment(txn, n.env, input)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pubID, nil
}

// Mirror creates a mirror. Owner or dispatcher.
func (n *Node) Mirror(ctx context.Context, caller common.Address, input hub.MirrorInput) (uint64, error) {
	var pubID uint64
	err := n.exec(ctx, "Mirror", state.GatePublishingEnabled, func(txn *store.Txn) error {
		if err := requireOwnerOrDispatcher(txn, caller, input.ProfileID); err != nil {
			return err
		}
		var err error
		pubID, err = publishing.CreateMirror(txn, n.env, input)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pubID, nil
}

// MirrorWithSig is Mirror authorized by the profile owner's signature.
func (n *Node) MirrorWithSig(ctx context.Context, input hub.MirrorInput, sig hub.Signature) (uint64, error) {
	var pubID uint64
	err := n.exec(ctx, "MirrorWithSig", state.GatePublishingEnabled, func(txn *store.Txn) error {
		owner, err := requireExistingOwner(txn, input.ProfileID)
		if err != nil {
			return err
		}
		if err := n.verifier.Verify(sigauth.MirrorAction{Input: input}, owner, sig); err != nil {
			return err
		}
		pubID, err = publishing.CreateMirror(txn, n.env, input)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pubID, nil
}

// --- Interaction ---

// Follow follows each listed profile and returns the minted follow token IDs.
func (n *Node) Follow(ctx context.Context, follower common.Address, profileIDs []uint64, datas [][]byte) ([]uint64, error) {
	var tokenIDs []uint64
	err := n.exec(ctx, "Follow", state.GateNotPaused, func(txn *store.Txn) error {
		var err error
		tokenIDs, err = interaction.Follow(txn, n.env, follower, profileIDs, datas)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokenIDs, nil
}

// FollowWithSig is Follow authorized by the follower's signature.
func (n *Node) FollowWithSig(ctx context.Context, follower common.Address, profileIDs []uint64, datas [][]byte, sig hub.Signature) ([]uint64, error) {
	var tokenIDs []uint64
	err := n.exec(ctx, "FollowWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		action := sigauth.FollowAction{Follower: follower, ProfileIDs: profileIDs, Datas: datas}
		if err := n.verifier.Verify(action, follower, sig); err != nil {
			return err
		}
		var err error
		tokenIDs, err = interaction.Follow(txn, n.env, follower, profileIDs, datas)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokenIDs, nil
}

// Collect collects a publication and returns the minted collect token ID.
func (n *Node) Collect(ctx context.Context, collector common.Address, profileID, pubID uint64, data []byte) (uint64, error) {
	var tokenID uint64
	err := n.exec(ctx, "Collect", state.GateNotPaused, func(txn *store.Txn) error {
		var err error
		tokenID, err = interaction.Collect(txn, n.env, collector, profileID, pubID, data)
		return err
	})
	if err != nil {
		return 0, err
	}
	return tokenID, nil
}

// CollectWithSig is Collect authorized by the collector's signature.
func (n *Node) CollectWithSig(ctx context.Context, collector common.Address, profileID, pubID uint64, data []byte, sig hub.Signature) (uint64, error) {
	var tokenID uint64
	err := n.exec(ctx, "CollectWithSig", state.GateNotPaused, func(txn *store.Txn) error {
		action := sigauth.CollectAction{Collector: collector, ProfileID: profileID, PubID: pubID, Data: data}
		if err := n.verifier.Verify(action, collector, sig); err != nil {
			return err
		}
		var err error
		tokenID, err = interaction.Collect(txn, n.env, collector, profileID, pubID, data)
		return err
	})
	if err != nil {
		return 0, err
	}
	return tokenID, nil
}

// CancelAllSignatures bumps the caller's nonce, invalidating every
// outstanding signed intent. Deliberately ungated so signers can always
// revoke, even while the protocol is paused.
func (n *Node) CancelAllSignatures(ctx context.Context, caller common.Address) (uint64, error) {
	var newNonce uint64
	err := n.exec(ctx, "CancelAllSignatures", state.GateNone, func(txn *store.Txn) error {
		n.ledger.ConsumeNonce(caller)
		newNonce = n.ledger.Nonce(caller)
		txn.Emit(hub.EventSignaturesCancelled, hub.SignaturesCancelledEvent{
			Signer:    caller,
			NewNonce:  newNonce,
			Timestamp: txn.Now(),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newNonce, nil
}

// --- Governance ---

// SetGovernance replaces the governance address. Governance only, ungated.
func (n *Node) SetGovernance(ctx context.Context, caller, newGovernance common.Address) error {
	return n.exec(ctx, "SetGovernance", state.GateNone, func(txn *store.Txn) error {
		if err := state.RequireGovernance(txn, caller); err != nil {
			return err
		}
		prev := txn.Governance()
		txn.SetGovernance(newGovernance)
		txn.Emit(hub.EventGovernanceSet, hub.GovernanceSetEvent{
			Caller:         caller,
			PrevGovernance: prev,
			NewGovernance:  newGovernance,
			Timestamp:      txn.Now(),
		})
		return nil
	})
}

// SetEmergencyAdmin replaces the emergency admin. Governance only, ungated.
func (n *Node) SetEmergencyAdmin(ctx context.Context, caller, newEmergencyAdmin common.Address) error {
	return n.exec(ctx, "SetEmergencyAdmin", state.GateNone, func(txn *store.Txn) error {
		if err := state.RequireGovernance(txn, caller); err != nil {
			return err
		}
		prev := txn.EmergencyAdmin()
		txn.SetEmergencyAdmin(newEmergencyAdmin)
		txn.Emit(hub.EventEmergencyAdminSet, hub.EmergencyAdminSetEvent{
			Caller:             caller,
			PrevEmergencyAdmin: prev,
			NewEmergencyAdmin:  newEmergencyAdmin,
			Timestamp:          txn.Now(),
		})
		return nil
	})
}

// SetState transitions the protocol state. Ungated: governance must always be
// able to unpause.
func (n *Node) SetState(ctx context.Context, caller common.Address, newState hub.ProtocolState) error {
	err := n.exec(ctx, "SetState", state.GateNone, func(txn *store.Txn) error {
		return state.Set(txn, caller, newState)
	})
	if err != nil {
		return err
	}
	n.log.Info().Stringer("state", newState).Msg("protocol state set")
	return nil
}

// Whitelist mutates one of the whitelist sets. Governance only, ungated.
func (n *Node) Whitelist(ctx context.Context, caller common.Address, kind hub.WhitelistKind, addr common.Address, whitelisted bool) error {
	if kind > hub.CollectModuleWhitelist {
		return hub.ErrUnknownWhitelistKind
	}
	return n.exec(ctx, "Whitelist", state.GateNone, func(txn *store.Txn) error {
		if err := state.RequireGovernance(txn, caller); err != nil {
			return err
		}
		txn.SetWhitelisted(kind, addr, whitelisted)
		txn.Emit(whitelistEventName(kind), hub.WhitelistedEvent{
			Address:     addr,
			Whitelisted: whitelisted,
			Timestamp:   txn.Now(),
		})
		return nil
	})
}

func whitelistEventName(kind hub.WhitelistKind) string {
	switch kind {
	case hub.FollowModuleWhitelist:
		return hub.EventFollowModuleWhitelisted
	case hub.ReferenceModuleWhitelist:
		return hub.EventReferenceModuleWhitelisted
	case hub.CollectModuleWhitelist:
		return hub.EventCollectModuleWhitelisted
	default:
		return hub.EventProfileCreatorWhitelisted
	}
}

// --- Views ---

// GetProfile returns the stored profile struct.
func (n *Node) GetProfile(profileID uint64) (hub.Profile, error) {
	p, ok := n.ledger.Profile(profileID)
	if !ok {
		return hub.Profile{}, hub.ErrProfileDoesNotExist
	}
	return p, nil
}

// GetProfileIDByHandle resolves a handle to a profile ID, or zero.
func (n *Node) GetProfileIDByHandle(handle string) uint64 {
	return n.ledger.ProfileIDByHandle(handle)
}

// GetHandle returns the handle of a profile.
func (n *Node) GetHandle(profileID uint64) (string, error) {
	p, ok := n.ledger.Profile(profileID)
	if !ok {
		return "", hub.ErrProfileDoesNotExist
	}
	return p.Handle, nil
}

// GetPublication returns the stored publication struct.
func (n *Node) GetPublication(profileID, pubID uint64) (hub.Publication, error) {
	p, ok := n.ledger.Publication(profileID, pubID)
	if !ok {
		return hub.Publication{}, hub.ErrPublicationDoesNotExist
	}
	return p, nil
}

// GetPublicationType classifies a publication.
func (n *Node) GetPublicationType(profileID, pubID uint64) hub.PubType {
	p, ok := n.ledger.Publication(profileID, pubID)
	if !ok {
		return hub.Nonexistent
	}
	return p.Type()
}

// GetContentURI returns the content of a publication, resolving mirrors to
// their root.
func (n *Node) GetContentURI(profileID, pubID uint64) (string, error) {
	rootProfileID, rootPubID, _, err := publishing.ResolveRoot(n.ledger, profileID, pubID)
	if err != nil {
		return "", err
	}
	root, ok := n.ledger.Publication(rootProfileID, rootPubID)
	if !ok {
		return "", hub.ErrPublicationDoesNotExist
	}
	return root.ContentURI, nil
}

// GetCollectModule returns the collect module governing a publication,
// resolving mirrors to their root.
func (n *Node) GetCollectModule(profileID, pubID uint64) (common.Address, error) {
	_, _, collectModule, err := publishing.ResolveRoot(n.ledger, profileID, pubID)
	if err != nil {
		return common.Address{}, err
	}
	return collectModule, nil
}

// GetPubCount returns the publication count of a profile.
func (n *Node) GetPubCount(profileID uint64) (uint64, error) {
	p, ok := n.ledger.Profile(profileID)
	if !ok {
		return 0, hub.ErrProfileDoesNotExist
	}
	return p.PubCount, nil
}

// GetDispatcher returns the profile's dispatcher, or the zero address.
func (n *Node) GetDispatcher(profileID uint64) (common.Address, error) {
	if !n.ledger.ProfileExists(profileID) {
		return common.Address{}, hub.ErrProfileDoesNotExist
	}
	return n.ledger.Dispatcher(profileID), nil
}

// GetDefaultProfile returns the wallet's default profile ID, or zero.
func (n *Node) GetDefaultProfile(wallet common.Address) uint64 {
	return n.ledger.DefaultProfile(wallet)
}

// OwnerOf returns the current owner of a profile. Burned profiles have no
// owner and resolve as nonexistent.
func (n *Node) OwnerOf(profileID uint64) (common.Address, error) {
	owner := n.ledger.Owner(profileID)
	if owner == (common.Address{}) {
		return common.Address{}, hub.ErrProfileDoesNotExist
	}
	return owner, nil
}

// GetGovernance returns the governance address.
func (n *Node) GetGovernance() common.Address {
	return n.ledger.Governance()
}

// GetEmergencyAdmin returns the emergency admin address.
func (n *Node) GetEmergencyAdmin() common.Address {
	return n.ledger.EmergencyAdmin()
}

// GetState returns the current protocol state.
func (n *Node) GetState() hub.ProtocolState {
	return n.ledger.State()
}

// GetNonce returns the signer's current meta-transaction nonce.
func (n *Node) GetNonce(signer common.Address) uint64 {
	return n.ledger.Nonce(signer)
}

// IsWhitelisted reports membership in one of the whitelist sets.
func (n *Node) IsWhitelisted(kind hub.WhitelistKind, addr common.Address) bool {
	return n.ledger.Whitelisted(kind, addr)
}

// IsFollowing reports whether follower holds a follow token for the profile.
// The check reads the follow token ledger directly, so it reflects mints
// regardless of which follow module produced them.
func (n *Node) IsFollowing(profileID uint64, follower common.Address, followTokenID uint64) (bool, error) {
	if !n.ledger.ProfileExists(profileID) {
		return false, hub.ErrProfileDoesNotExist
	}
	return n.ledger.HoldsFollowToken(profileID, follower, followTokenID), nil
}

// FollowTokenCount returns the number of follow tokens minted for a profile.
func (n *Node) FollowTokenCount(profileID uint64) (uint64, error) {
	if !n.ledger.ProfileExists(profileID) {
		return 0, hub.ErrProfileDoesNotExist
	}
	return n.ledger.FollowTokenCount(profileID), nil
}

// CollectTokenCount returns the number of collect tokens minted for a
// publication. Mirrors resolve to their root, so the count always reflects
// the collected original.
func (n *Node) CollectTokenCount(profileID, pubID uint64) (uint64, error) {
	rootProfileID, rootPubID, _, err := publishing.ResolveRoot(n.ledger, profileID, pubID)
	if err != nil {
		return 0, err
	}
	return n.ledger.CollectTokenCount(rootProfileID, rootPubID), nil
}
