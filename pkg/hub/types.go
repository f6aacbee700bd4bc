package hub

import (
	"github.com/ethereum/go-ethereum/common"
)

// Protocol-wide limits.
const (
	// MaxHandleLength is the maximum handle length in bytes.
	MaxHandleLength = 31
	// MaxProfileImageURILength is the maximum profile image URI length in bytes.
	MaxProfileImageURILength = 6000
)

// ProtocolState is the global pause switch gating categories of entrypoints.
// States are ordered by restriction: Unpaused < PublishingPaused < Paused.
type ProtocolState uint8

const (
	// Unpaused allows all operations.
	Unpaused ProtocolState = iota
	// PublishingPaused blocks publication creation (post, comment, mirror and
	// their signed variants) while permitting everything else.
	PublishingPaused
	// Paused blocks every mutating operation, including profile transfers.
	Paused
)

// String returns a human-readable state name.
func (s ProtocolState) String() string {
	switch s {
	case Unpaused:
		return "Unpaused"
	case PublishingPaused:
		return "PublishingPaused"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// PubType classifies a publication. The type is derived from stored fields,
// never stored itself: a zero collect module means Mirror, a nonzero collect
// module with a zero pointer means Post, and both nonzero means Comment.
type PubType uint8

const (
	// Nonexistent means the (profileID, pubID) pair addresses no publication.
	Nonexistent PubType = iota
	// Post is a root publication with content and a collect module.
	Post
	// Comment is a root publication pointing at an existing publication.
	Comment
	// Mirror is a contentless re-share pointing at a root publication.
	Mirror
)

// String returns a human-readable publication type name.
func (t PubType) String() string {
	switch t {
	case Post:
		return "Post"
	case Comment:
		return "Comment"
	case Mirror:
		return "Mirror"
	default:
		return "Nonexistent"
	}
}

// Profile is the stored state of a profile. Profiles are identified by a
// uint64 profile ID assigned from a global post-increment counter starting
// at 1, and owned like an NFT (owner plus at most one approved address,
// tracked by the hub's ledger).
type Profile struct {
	// PubCount is the number of publications created by this profile. Pub IDs
	// run from 1 to PubCount.
	PubCount uint64

	// FollowModule is the bound follow policy module, or the zero address.
	FollowModule common.Address

	// Handle is the unique lowercase handle, 1..31 bytes of [0-9a-z._-].
	// After a burn the handle mapping is released but this field survives.
	Handle string

	// ImageURI is the profile picture URI, at most MaxProfileImageURILength bytes.
	ImageURI string

	// FollowNFTURI is the metadata URI used by the follow token ledger.
	FollowNFTURI string

	// FollowTokensMinted is the number of follow tokens minted for this
	// profile. Zero until the first follow; the follow ledger is created
	// lazily at that point.
	FollowTokensMinted uint64
}

// Publication is the stored state of a post, comment or mirror, keyed by
// (profileID, pubID) where pubID is a per-profile counter starting at 1.
type Publication struct {
	// PointedProfileID and PointedPubID reference the publication this one
	// points at. Zero for posts. For mirrors the pointer always references
	// the root post or comment, never another mirror: mirror chains collapse
	// eagerly at creation time.
	PointedProfileID uint64
	PointedPubID     uint64

	// ContentURI is the publication content. Empty for mirrors.
	ContentURI string

	// ReferenceModule gates comments and mirrors pointing at this
	// publication, or the zero address.
	ReferenceModule common.Address

	// CollectModule gates collecting this publication. Zero for mirrors,
	// nonzero for posts and comments.
	CollectModule common.Address

	// CollectTokensMinted is the number of collect tokens minted against this
	// publication.
	CollectTokensMinted uint64
}

// Type derives the publication type from the stored fields.
func (p *Publication) Type() PubType {
	if p == nil {
		return Nonexistent
	}
	if p.CollectModule == (common.Address{}) {
		return Mirror
	}
	if p.PointedProfileID == 0 && p.PointedPubID == 0 {
		return Post
	}
	return Comment
}

// Signature is a recoverable secp256k1 signature bundle authorizing a signed
// meta-transaction variant of a hub entrypoint.
type Signature struct {
	// Bytes is the 65-byte [R || S || V] signature over the typed digest.
	Bytes []byte

	// Deadline is the unix-seconds time after which the signature is no
	// longer valid. A deadline strictly in the past is rejected.
	Deadline uint64
}

// CreateProfileInput carries the parameters of CreateProfile.
type CreateProfileInput struct {
	// To is the address that will own the new profile.
	To common.Address
	// Handle is the requested unique handle.
	Handle string
	// ImageURI is the profile picture URI.
	ImageURI string
	// FollowModule is an optional follow policy module address.
	FollowModule common.Address
	// FollowModuleInitData is passed to the follow module's initializer.
	FollowModuleInitData []byte
	// FollowNFTURI is the metadata URI for the profile's follow tokens.
	FollowNFTURI string
}

// PostInput carries the parameters of Post.
type PostInput struct {
	ProfileID         uint64
	ContentURI        string
	CollectModule     common.Address
	CollectInitData   []byte
	ReferenceModule   common.Address
	ReferenceInitData []byte
}

// CommentInput carries the parameters of Comment.
type CommentInput struct {
	ProfileID         uint64
	ContentURI        string
	PointedProfileID  uint64
	PointedPubID      uint64
	ReferenceData     []byte
	CollectModule     common.Address
	CollectInitData   []byte
	ReferenceModule   common.Address
	ReferenceInitData []byte
}

// MirrorInput carries the parameters of Mirror.
type MirrorInput struct {
	ProfileID         uint64
	PointedProfileID  uint64
	PointedPubID      uint64
	ReferenceData     []byte
	ReferenceModule   common.Address
	ReferenceInitData []byte
}

// WhitelistKind selects one of the governance-managed whitelist sets.
type WhitelistKind uint8

const (
	// ProfileCreatorWhitelist gates who may call CreateProfile.
	ProfileCreatorWhitelist WhitelistKind = iota
	// FollowModuleWhitelist gates follow module bindings.
	FollowModuleWhitelist
	// ReferenceModuleWhitelist gates reference module bindings.
	ReferenceModuleWhitelist
	// CollectModuleWhitelist gates collect module bindings.
	CollectModuleWhitelist
)

// String returns a human-readable whitelist name.
func (k WhitelistKind) String() string {
	switch k {
	case ProfileCreatorWhitelist:
		return "ProfileCreator"
	case FollowModuleWhitelist:
		return "FollowModule"
	case ReferenceModuleWhitelist:
		return "ReferenceModule"
	case CollectModuleWhitelist:
		return "CollectModule"
	default:
		return "Unknown"
	}
}
