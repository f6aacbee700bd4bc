package publishing

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/pkg/hub"
)

// PubReader is the read-only publication access both the Ledger and a Txn
// provide; pointer resolution works against either.
type PubReader interface {
	Publication(profileID, pubID uint64) (hub.Publication, bool)
}

// ResolveRoot resolves a publication to its root post or comment and that
// root's collect module.
//
// A publication with a nonzero collect module is already a root and is
// returned unchanged. Otherwise it is a mirror whose stored pointer already
// references a root (mirror chains collapse at creation time), so a single
// lookup suffices; this is deliberately non-recursive. A mirror with a zero
// pointer indicates an uninitialized slot and fails.
//
// Both collect-target resolution and content lookup go through here, which
// is what makes mirrors transparent: collecting or reading through a mirror
// always yields the original root's data and module.
func ResolveRoot(r PubReader, profileID, pubID uint64) (rootProfileID, rootPubID uint64, collectModule common.Address, err error) {
	pub, ok := r.Publication(profileID, pubID)
	if !ok {
		return 0, 0, common.Address{}, hub.ErrPublicationDoesNotExist
	}
	if pub.CollectModule != (common.Address{}) {
		return profileID, pubID, pub.CollectModule, nil
	}
	if pub.PointedProfileID == 0 {
		return 0, 0, common.Address{}, hub.ErrPublicationDoesNotExist
	}
	root, ok := r.Publication(pub.PointedProfileID, pub.PointedPubID)
	if !ok {
		return 0, 0, common.Address{}, hub.ErrPublicationDoesNotExist
	}
	return pub.PointedProfileID, pub.PointedPubID, root.CollectModule, nil
}

// ValidateHandle checks handle length and charset: 1..31 bytes, each byte
// one of [0-9a-z._-].
func ValidateHandle(handle string) error {
	if len(handle) == 0 || len(handle) > hub.MaxHandleLength {
		return hub.ErrHandleLengthInvalid
	}
	for i := 0; i < len(handle); i++ {
		c := handle[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c == '-' || c == '_' || c == '.':
		default:
			return hub.ErrHandleContainsInvalidCharacters
		}
	}
	return nil
}
