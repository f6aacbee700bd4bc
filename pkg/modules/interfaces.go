package modules

import (
	"github.com/ethereum/go-ethereum/common"
)

// FollowModule is the call contract for follow policy modules.
type FollowModule interface {
	// InitializeFollowModule is invoked when the module is bound to a
	// profile. The returned bytes are embedded in the emitted event.
	InitializeFollowModule(sender common.Address, profileID uint64, data []byte) ([]byte, error)

	// ProcessFollow is invoked for each follow of the profile and may veto
	// it by returning an error. Hub-only.
	ProcessFollow(sender, follower common.Address, profileID uint64, data []byte) error

	// IsFollowing reports whether follower is considered a follower of the
	// profile. Token ID zero means "any token owned by follower".
	IsFollowing(profileID uint64, follower common.Address, followTokenID uint64) (bool, error)
}

// CollectModule is the call contract for collect policy modules.
type CollectModule interface {
	// InitializePublicationCollectModule is invoked when a post or comment
	// binds this module. The returned bytes are embedded in the emitted
	// event.
	InitializePublicationCollectModule(sender common.Address, profileID, pubID uint64, data []byte) ([]byte, error)

	// ProcessCollect is invoked for each collect of the publication and may
	// veto it by returning an error. A nonzero referrerProfileID identifies
	// the mirror the collector came through. Hub-only.
	ProcessCollect(sender common.Address, referrerProfileID uint64, collector common.Address, profileID, pubID uint64, data []byte) error
}

// ReferenceModule is the call contract for reference policy modules.
type ReferenceModule interface {
	// InitializeReferenceModule is invoked when a publication binds this
	// module. The returned bytes are embedded in the emitted event.
	InitializeReferenceModule(sender common.Address, profileID, pubID uint64, data []byte) ([]byte, error)

	// ProcessComment is invoked when a comment points at the publication
	// this module is bound to, and may veto it. Hub-only.
	ProcessComment(sender common.Address, profileID, pointedProfileID, pointedPubID uint64, data []byte) error

	// ProcessMirror is invoked when a mirror points at the publication this
	// module is bound to, and may veto it. Hub-only.
	ProcessMirror(sender common.Address, profileID, pointedProfileID, pointedPubID uint64, data []byte) error
}
