package hub

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Hub is the entrypoint surface of the protocol. All mutating operations take
// the caller address explicitly (the transport layer authenticates it) and a
// context for cancellation; *WithSig variants authorize the action from a
// recovered signature instead of the caller, so any relayer may submit them.
//
// Every mutating entrypoint is gated by the protocol state: Paused blocks all
// of them, PublishingPaused additionally blocks only Post, Comment and Mirror
// (and their signed variants). Views are never gated.
type Hub interface {
	// CreateProfile mints a new profile owned by input.To and returns its
	// profile ID. The caller must be a whitelisted profile creator.
	CreateProfile(ctx context.Context, caller common.Address, input CreateProfileInput) (uint64, error)

	// SetFollowModule binds (or clears, with the zero address) the follow
	// module of a profile. Owner only.
	SetFollowModule(ctx context.Context, caller common.Address, profileID uint64, followModule common.Address, initData []byte) error
	// SetFollowModuleWithSig is SetFollowModule authorized by the profile
	// owner's signature.
	SetFollowModuleWithSig(ctx context.Context, profileID uint64, followModule common.Address, initData []byte, sig Signature) error

	// SetDispatcher sets (or clears) the profile's delegated publisher.
	// Owner only.
	SetDispatcher(ctx context.Context, caller common.Address, profileID uint64, dispatcher common.Address) error
	// SetDispatcherWithSig is SetDispatcher authorized by the profile
	// owner's signature.
	SetDispatcherWithSig(ctx context.Context, profileID uint64, dispatcher common.Address, sig Signature) error

	// SetProfileImageURI updates the profile image. Owner or dispatcher.
	SetProfileImageURI(ctx context.Context, caller common.Address, profileID uint64, imageURI string) error
	// SetProfileImageURIWithSig is SetProfileImageURI authorized by the
	// profile owner's signature.
	SetProfileImageURIWithSig(ctx context.Context, profileID uint64, imageURI string, sig Signature) error

	// SetFollowNFTURI updates the follow token metadata URI. Owner or
	// dispatcher.
	SetFollowNFTURI(ctx context.Context, caller common.Address, profileID uint64, followNFTURI string) error
	// SetFollowNFTURIWithSig is SetFollowNFTURI authorized by the profile
	// owner's signature.
	SetFollowNFTURIWithSig(ctx context.Context, profileID uint64, followNFTURI string, sig Signature) error

	// SetDefaultProfile sets the caller's default profile. Profile ID zero
	// clears it; a nonzero profile must be owned by the wallet.
	SetDefaultProfile(ctx context.Context, caller common.Address, profileID uint64) error
	// SetDefaultProfileWithSig is SetDefaultProfile authorized by the
	// wallet's signature.
	SetDefaultProfileWithSig(ctx context.Context, wallet common.Address, profileID uint64, sig Signature) error

	// TransferProfile moves profile ownership. Owner or approved address.
	// The dispatcher and the previous owner's default-profile binding are
	// cleared as a side effect.
	TransferProfile(ctx context.Context, caller common.Address, profileID uint64, to common.Address) error

	// ApproveProfile sets the single approved operator for a profile.
	// Owner only.
	ApproveProfile(ctx context.Context, caller common.Address, profileID uint64, approved common.Address) error

	// BurnProfile burns a profile, releasing its handle. Owner or approved
	// address. The stored profile struct survives as ghost data.
	BurnProfile(ctx context.Context, caller common.Address, profileID uint64) error
	// BurnProfileWithSig is BurnProfile authorized by the owner's signature.
	BurnProfileWithSig(ctx context.Context, profileID uint64, sig Signature) error

	// Post creates a post and returns its pub ID. Owner or dispatcher.
	Post(ctx context.Context, caller common.Address, input PostInput) (uint64, error)
	// PostWithSig is Post authorized by the profile owner's signature.
	PostWithSig(ctx context.Context, input PostInput, sig Signature) (uint64, error)

	// Comment creates a comment and returns its pub ID. Owner or dispatcher.
	Comment(ctx context.Context, caller common.Address, input CommentInput) (uint64, error)
	// CommentWithSig is Comment authorized by the profile owner's signature.
	CommentWithSig(ctx context.Context, input CommentInput, sig Signature) (uint64, error)

	// Mirror creates a mirror and returns its pub ID. Owner or dispatcher.
	Mirror(ctx context.Context, caller common.Address, input MirrorInput) (uint64, error)
	// MirrorWithSig is Mirror authorized by the profile owner's signature.
	MirrorWithSig(ctx context.Context, input MirrorInput, sig Signature) (uint64, error)

	// Follow follows each listed profile with the matching module data and
	// returns the minted follow token IDs.
	Follow(ctx context.Context, follower common.Address, profileIDs []uint64, datas [][]byte) ([]uint64, error)
	// FollowWithSig is Follow authorized by the follower's signature.
	FollowWithSig(ctx context.Context, follower common.Address, profileIDs []uint64, datas [][]byte, sig Signature) ([]uint64, error)

	// Collect collects a publication (resolving mirrors to their root) and
	// returns the minted collect token ID.
	Collect(ctx context.Context, collector common.Address, profileID, pubID uint64, data []byte) (uint64, error)
	// CollectWithSig is Collect authorized by the collector's signature.
	CollectWithSig(ctx context.Context, collector common.Address, profileID, pubID uint64, data []byte, sig Signature) (uint64, error)

	// CancelAllSignatures bumps the caller's nonce, atomically invalidating
	// every outstanding signed intent of theirs.
	CancelAllSignatures(ctx context.Context, caller common.Address) (uint64, error)

	// SetGovernance replaces the governance address. Governance only.
	SetGovernance(ctx context.Context, caller, newGovernance common.Address) error
	// SetEmergencyAdmin replaces the emergency admin. Governance only.
	SetEmergencyAdmin(ctx context.Context, caller, newEmergencyAdmin common.Address) error
	// SetState transitions the protocol state. Governance may set any state;
	// the emergency admin may only strictly escalate restriction and never
	// to Unpaused.
	SetState(ctx context.Context, caller common.Address, newState ProtocolState) error
	// Whitelist mutates one of the whitelist sets. Governance only.
	Whitelist(ctx context.Context, caller common.Address, kind WhitelistKind, addr common.Address, whitelisted bool) error

	// Views.

	// GetProfile returns the stored profile struct. Burned profiles remain
	// readable (ghost data).
	GetProfile(profileID uint64) (Profile, error)
	// GetProfileIDByHandle resolves a handle to a profile ID, or zero.
	GetProfileIDByHandle(handle string) uint64
	// GetHandle returns the handle of a profile.
	GetHandle(profileID uint64) (string, error)
	// GetPublication returns the stored publication struct.
	GetPublication(profileID, pubID uint64) (Publication, error)
	// GetPublicationType classifies a publication, returning Nonexistent for
	// pub IDs outside [1, pubCount].
	GetPublicationType(profileID, pubID uint64) PubType
	// GetContentURI returns the content of a publication, resolving mirrors
	// to their root.
	GetContentURI(profileID, pubID uint64) (string, error)
	// GetCollectModule returns the collect module governing a publication,
	// resolving mirrors to their root.
	GetCollectModule(profileID, pubID uint64) (common.Address, error)
	// GetPubCount returns the publication count of a profile.
	GetPubCount(profileID uint64) (uint64, error)
	// GetDispatcher returns the profile's dispatcher, or the zero address.
	GetDispatcher(profileID uint64) (common.Address, error)
	// GetDefaultProfile returns the wallet's default profile ID, or zero.
	GetDefaultProfile(wallet common.Address) uint64
	// OwnerOf returns the current owner of a profile.
	OwnerOf(profileID uint64) (common.Address, error)
	// GetGovernance returns the governance address.
	GetGovernance() common.Address
	// GetEmergencyAdmin returns the emergency admin address.
	GetEmergencyAdmin() common.Address
	// GetState returns the current protocol state.
	GetState() ProtocolState
	// GetNonce returns the signer's current meta-transaction nonce.
	GetNonce(signer common.Address) uint64
	// IsWhitelisted reports membership in one of the whitelist sets.
	IsWhitelisted(kind WhitelistKind, addr common.Address) bool
	// IsFollowing reports whether follower holds a follow token for the
	// profile. Token ID zero means "any token owned by follower".
	IsFollowing(profileID uint64, follower common.Address, followTokenID uint64) (bool, error)
}
