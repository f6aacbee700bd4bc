package modules

import (
	"github.com/ethereum/go-ethereum/common"

	modulespkg "github.com/socialhub/socialhub-go/pkg/modules"
)

// FollowerOnlyReferenceModule restricts comments and mirrors on a
// publication to profiles whose owner follows the publication's profile.
type FollowerOnlyReferenceModule struct {
	modulespkg.ModuleBase
	hubView HubView
}

// NewFollowerOnlyReferenceModule creates a follower-only reference module
// bound to the hub.
func NewFollowerOnlyReferenceModule(hubAddr common.Address, view HubView) *FollowerOnlyReferenceModule {
	return &FollowerOnlyReferenceModule{
		ModuleBase: modulespkg.NewModuleBase(hubAddr),
		hubView:    view,
	}
}

// InitializeReferenceModule accepts any publication with no state.
func (m *FollowerOnlyReferenceModule) InitializeReferenceModule(sender common.Address, profileID, pubID uint64, data []byte) ([]byte, error) {
	if err := m.CheckHub(sender); err != nil {
		return nil, err
	}
	return nil, nil
}

// ProcessComment vetoes comments from non-followers.
func (m *FollowerOnlyReferenceModule) ProcessComment(sender common.Address, profileID, pointedProfileID, pointedPubID uint64, data []byte) error {
	if err := m.CheckHub(sender); err != nil {
		return err
	}
	return m.checkFollower(profileID, pointedProfileID)
}

// ProcessMirror vetoes mirrors from non-followers.
func (m *FollowerOnlyReferenceModule) ProcessMirror(sender common.Address, profileID, pointedProfileID, pointedPubID uint64, data []byte) error {
	if err := m.CheckHub(sender); err != nil {
		return err
	}
	return m.checkFollower(profileID, pointedProfileID)
}

// checkFollower verifies the acting profile's CURRENT owner follows the
// pointed profile. Ownership is looked up fresh so a transferred profile is
// judged by its new owner.
func (m *FollowerOnlyReferenceModule) checkFollower(profileID, pointedProfileID uint64) error {
	owner, err := m.hubView.OwnerOf(profileID)
	if err != nil {
		return err
	}
	following, err := m.hubView.IsFollowing(pointedProfileID, owner, 0)
	if err != nil {
		return err
	}
	if !following {
		return ErrNotFollowing
	}
	return nil
}

var _ modulespkg.ReferenceModule = (*FollowerOnlyReferenceModule)(nil)
