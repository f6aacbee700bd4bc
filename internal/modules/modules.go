// Package modules provides baseline policy module implementations: a free
// collect module (optionally follower-gated), a collect module that vetoes
// every collect, and a follower-only reference module. They double as
// reference implementations of the module call contract: every hook guards
// against non-hub senders through modules.ModuleBase.
package modules

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInitDataInvalid is returned when a module initializer cannot decode
	// its init data. The failure propagates and aborts the whole operation.
	ErrInitDataInvalid = errors.New("module init data invalid")
	// ErrCollectNotAllowed is the veto of the revert collect module.
	ErrCollectNotAllowed = errors.New("collect not allowed")
	// ErrNotFollowing vetoes an action restricted to followers.
	ErrNotFollowing = errors.New("not a follower")
)

// HubView is the read access baseline modules need from the hub: fresh owner
// lookups and follow checks. The hub facade satisfies it.
type HubView interface {
	OwnerOf(profileID uint64) (common.Address, error)
	IsFollowing(profileID uint64, follower common.Address, followTokenID uint64) (bool, error)
}
