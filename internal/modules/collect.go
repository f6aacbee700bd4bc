package modules

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	modulespkg "github.com/socialhub/socialhub-go/pkg/modules"
)

// FreeCollectModule allows anyone to collect for free. Init data is one
// optional byte: nonzero restricts collecting to followers of the
// publication's profile.
type FreeCollectModule struct {
	modulespkg.ModuleBase
	hubView HubView

	mu           sync.RWMutex
	followerOnly map[pubKey]bool
}

type pubKey struct {
	profileID uint64
	pubID     uint64
}

// NewFreeCollectModule creates a free collect module bound to the hub.
func NewFreeCollectModule(hubAddr common.Address, view HubView) *FreeCollectModule {
	return &FreeCollectModule{
		ModuleBase:   modulespkg.NewModuleBase(hubAddr),
		hubView:      view,
		followerOnly: make(map[pubKey]bool),
	}
}

// InitializePublicationCollectModule decodes the follower-only flag.
func (m *FreeCollectModule) InitializePublicationCollectModule(sender common.Address, profileID, pubID uint64, data []byte) ([]byte, error) {
	if err := m.CheckHub(sender); err != nil {
		return nil, err
	}
	if len(data) > 1 {
		return nil, ErrInitDataInvalid
	}
	followerOnly := len(data) == 1 && data[0] != 0

	m.mu.Lock()
	m.followerOnly[pubKey{profileID, pubID}] = followerOnly
	m.mu.Unlock()

	if followerOnly {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// ProcessCollect permits the collect unless the publication is
// follower-only and the collector does not follow the profile.
func (m *FreeCollectModule) ProcessCollect(sender common.Address, referrerProfileID uint64, collector common.Address, profileID, pubID uint64, data []byte) error {
	if err := m.CheckHub(sender); err != nil {
		return err
	}

	m.mu.RLock()
	followerOnly := m.followerOnly[pubKey{profileID, pubID}]
	m.mu.RUnlock()

	if !followerOnly {
		return nil
	}
	following, err := m.hubView.IsFollowing(profileID, collector, 0)
	if err != nil {
		return err
	}
	if !following {
		return ErrNotFollowing
	}
	return nil
}

// RevertCollectModule vetoes every collect; publications bound to it are
// explicitly uncollectable.
type RevertCollectModule struct {
	modulespkg.ModuleBase
}

// NewRevertCollectModule creates a revert collect module bound to the hub.
func NewRevertCollectModule(hubAddr common.Address) *RevertCollectModule {
	return &RevertCollectModule{ModuleBase: modulespkg.NewModuleBase(hubAddr)}
}

// InitializePublicationCollectModule accepts any publication with no state.
func (m *RevertCollectModule) InitializePublicationCollectModule(sender common.Address, profileID, pubID uint64, data []byte) ([]byte, error) {
	if err := m.CheckHub(sender); err != nil {
		return nil, err
	}
	return nil, nil
}

// ProcessCollect always vetoes.
func (m *RevertCollectModule) ProcessCollect(sender common.Address, referrerProfileID uint64, collector common.Address, profileID, pubID uint64, data []byte) error {
	if err := m.CheckHub(sender); err != nil {
		return err
	}
	return ErrCollectNotAllowed
}

// Compile-time interface checks.
var (
	_ modulespkg.CollectModule = (*FreeCollectModule)(nil)
	_ modulespkg.CollectModule = (*RevertCollectModule)(nil)
)
