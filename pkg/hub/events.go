package hub

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Canonical event names, published on the protocol event feed and consumed by
// off-chain indexers. Every payload carries the hub-assigned timestamp.
const (
	EventProfileCreated             = "ProfileCreated"
	EventFollowModuleSet            = "FollowModuleSet"
	EventDispatcherSet              = "DispatcherSet"
	EventProfileImageURISet         = "ProfileImageURISet"
	EventFollowNFTURISet            = "FollowNFTURISet"
	EventDefaultProfileSet          = "DefaultProfileSet"
	EventProfileTransferred         = "ProfileTransferred"
	EventProfileBurned              = "ProfileBurned"
	EventPostCreated                = "PostCreated"
	EventCommentCreated             = "CommentCreated"
	EventMirrorCreated              = "MirrorCreated"
	EventFollowed                   = "Followed"
	EventCollected                  = "Collected"
	EventFollowNFTTransferred       = "FollowNFTTransferred"
	EventCollectNFTTransferred      = "CollectNFTTransferred"
	EventGovernanceSet              = "GovernanceSet"
	EventEmergencyAdminSet          = "EmergencyAdminSet"
	EventStateSet                   = "StateSet"
	EventProfileCreatorWhitelisted  = "ProfileCreatorWhitelisted"
	EventFollowModuleWhitelisted    = "FollowModuleWhitelisted"
	EventReferenceModuleWhitelisted = "ReferenceModuleWhitelisted"
	EventCollectModuleWhitelisted   = "CollectModuleWhitelisted"
	EventSignaturesCancelled        = "SignaturesCancelled"
)

// ProfileCreatedEvent is emitted once per successful CreateProfile.
type ProfileCreatedEvent struct {
	ProfileID              uint64         `json:"profileId"`
	Creator                common.Address `json:"creator"`
	To                     common.Address `json:"to"`
	Handle                 string         `json:"handle"`
	ImageURI               string         `json:"imageUri"`
	FollowModule           common.Address `json:"followModule"`
	FollowModuleReturnData []byte         `json:"followModuleReturnData"`
	FollowNFTURI           string         `json:"followNftUri"`
	Timestamp              time.Time      `json:"timestamp"`
}

// FollowModuleSetEvent is emitted when a profile's follow module changes.
type FollowModuleSetEvent struct {
	ProfileID              uint64         `json:"profileId"`
	FollowModule           common.Address `json:"followModule"`
	FollowModuleReturnData []byte         `json:"followModuleReturnData"`
	Timestamp              time.Time      `json:"timestamp"`
}

// DispatcherSetEvent is emitted when a profile's dispatcher changes,
// including the implicit clear on transfer.
type DispatcherSetEvent struct {
	ProfileID  uint64         `json:"profileId"`
	Dispatcher common.Address `json:"dispatcher"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ProfileImageURISetEvent is emitted when a profile image URI changes.
type ProfileImageURISetEvent struct {
	ProfileID uint64    `json:"profileId"`
	ImageURI  string    `json:"imageUri"`
	Timestamp time.Time `json:"timestamp"`
}

// FollowNFTURISetEvent is emitted when a profile's follow token URI changes.
type FollowNFTURISetEvent struct {
	ProfileID    uint64    `json:"profileId"`
	FollowNFTURI string    `json:"followNftUri"`
	Timestamp    time.Time `json:"timestamp"`
}

// DefaultProfileSetEvent is emitted when an address changes its default
// profile. ProfileID zero means the default was cleared.
type DefaultProfileSetEvent struct {
	Wallet    common.Address `json:"wallet"`
	ProfileID uint64         `json:"profileId"`
	Timestamp time.Time      `json:"timestamp"`
}

// ProfileTransferredEvent is emitted when profile ownership changes.
type ProfileTransferredEvent struct {
	ProfileID uint64         `json:"profileId"`
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	Timestamp time.Time      `json:"timestamp"`
}

// ProfileBurnedEvent is emitted when a profile is burned. The handle is
// released for reuse; the stored profile struct survives as ghost data.
type ProfileBurnedEvent struct {
	ProfileID uint64         `json:"profileId"`
	Owner     common.Address `json:"owner"`
	Handle    string         `json:"handle"`
	Timestamp time.Time      `json:"timestamp"`
}

// PostCreatedEvent is emitted once per successful Post.
type PostCreatedEvent struct {
	ProfileID                 uint64         `json:"profileId"`
	PubID                     uint64         `json:"pubId"`
	ContentURI                string         `json:"contentUri"`
	CollectModule             common.Address `json:"collectModule"`
	CollectModuleReturnData   []byte         `json:"collectModuleReturnData"`
	ReferenceModule           common.Address `json:"referenceModule"`
	ReferenceModuleReturnData []byte         `json:"referenceModuleReturnData"`
	Timestamp                 time.Time      `json:"timestamp"`
}

// CommentCreatedEvent is emitted once per successful Comment.
type CommentCreatedEvent struct {
	ProfileID                 uint64         `json:"profileId"`
	PubID                     uint64         `json:"pubId"`
	ContentURI                string         `json:"contentUri"`
	PointedProfileID          uint64         `json:"pointedProfileId"`
	PointedPubID              uint64         `json:"pointedPubId"`
	CollectModule             common.Address `json:"collectModule"`
	CollectModuleReturnData   []byte         `json:"collectModuleReturnData"`
	ReferenceModule           common.Address `json:"referenceModule"`
	ReferenceModuleReturnData []byte         `json:"referenceModuleReturnData"`
	Timestamp                 time.Time      `json:"timestamp"`
}

// MirrorCreatedEvent is emitted once per successful Mirror. The pointed
// fields always reference the root post or comment.
type MirrorCreatedEvent struct {
	ProfileID                 uint64         `json:"profileId"`
	PubID                     uint64         `json:"pubId"`
	PointedProfileID          uint64         `json:"pointedProfileId"`
	PointedPubID              uint64         `json:"pointedPubId"`
	ReferenceModule           common.Address `json:"referenceModule"`
	ReferenceModuleReturnData []byte         `json:"referenceModuleReturnData"`
	Timestamp                 time.Time      `json:"timestamp"`
}

// FollowedEvent is emitted once per Follow call.
type FollowedEvent struct {
	Follower   common.Address `json:"follower"`
	ProfileIDs []uint64       `json:"profileIds"`
	TokenIDs   []uint64       `json:"tokenIds"`
	Timestamp  time.Time      `json:"timestamp"`
}

// CollectedEvent is emitted once per Collect call. Root fields identify the
// publication actually collected after mirror resolution.
type CollectedEvent struct {
	Collector     common.Address `json:"collector"`
	ProfileID     uint64         `json:"profileId"`
	PubID         uint64         `json:"pubId"`
	RootProfileID uint64         `json:"rootProfileId"`
	RootPubID     uint64         `json:"rootPubId"`
	TokenID       uint64         `json:"tokenId"`
	Timestamp     time.Time      `json:"timestamp"`
}

// FollowNFTTransferredEvent records a follow token mint or transfer. A zero
// From address means a mint.
type FollowNFTTransferredEvent struct {
	ProfileID uint64         `json:"profileId"`
	TokenID   uint64         `json:"tokenId"`
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	Timestamp time.Time      `json:"timestamp"`
}

// CollectNFTTransferredEvent records a collect token mint or transfer. A zero
// From address means a mint.
type CollectNFTTransferredEvent struct {
	ProfileID uint64         `json:"profileId"`
	PubID     uint64         `json:"pubId"`
	TokenID   uint64         `json:"tokenId"`
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	Timestamp time.Time      `json:"timestamp"`
}

// GovernanceSetEvent is emitted when the governance address changes.
type GovernanceSetEvent struct {
	Caller         common.Address `json:"caller"`
	PrevGovernance common.Address `json:"prevGovernance"`
	NewGovernance  common.Address `json:"newGovernance"`
	Timestamp      time.Time      `json:"timestamp"`
}

// EmergencyAdminSetEvent is emitted when the emergency admin changes.
type EmergencyAdminSetEvent struct {
	Caller             common.Address `json:"caller"`
	PrevEmergencyAdmin common.Address `json:"prevEmergencyAdmin"`
	NewEmergencyAdmin  common.Address `json:"newEmergencyAdmin"`
	Timestamp          time.Time      `json:"timestamp"`
}

// StateSetEvent is emitted when the protocol state changes (including
// idempotent same-state sets by governance).
type StateSetEvent struct {
	Caller    common.Address `json:"caller"`
	PrevState ProtocolState  `json:"prevState"`
	NewState  ProtocolState  `json:"newState"`
	Timestamp time.Time      `json:"timestamp"`
}

// WhitelistedEvent is emitted for every whitelist mutation; the event name
// identifies the whitelist kind.
type WhitelistedEvent struct {
	Address     common.Address `json:"address"`
	Whitelisted bool           `json:"whitelisted"`
	Timestamp   time.Time      `json:"timestamp"`
}

// SignaturesCancelledEvent is emitted when a signer invalidates all of their
// outstanding signed intents by bumping their nonce.
type SignaturesCancelledEvent struct {
	Signer    common.Address `json:"signer"`
	NewNonce  uint64         `json:"newNonce"`
	Timestamp time.Time      `json:"timestamp"`
}
