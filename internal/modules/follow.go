package modules

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/pkg/hub"
	modulespkg "github.com/socialhub/socialhub-go/pkg/modules"
)

// ApprovalFollowModule only admits followers the profile owner has approved
// in advance. Approvals are single-use: a successful follow consumes one.
type ApprovalFollowModule struct {
	modulespkg.ModuleBase
	hubView HubView

	mu       sync.Mutex
	approved map[uint64]map[common.Address]bool
}

// NewApprovalFollowModule creates an approval follow module bound to the hub.
func NewApprovalFollowModule(hubAddr common.Address, view HubView) *ApprovalFollowModule {
	return &ApprovalFollowModule{
		ModuleBase: modulespkg.NewModuleBase(hubAddr),
		hubView:    view,
		approved:   make(map[uint64]map[common.Address]bool),
	}
}

// Approve grants or revokes follow approval for an address. Only the
// profile's current owner may change approvals.
func (m *ApprovalFollowModule) Approve(caller common.Address, profileID uint64, follower common.Address, approve bool) error {
	owner, err := m.hubView.OwnerOf(profileID)
	if err != nil {
		return err
	}
	if caller != owner {
		return hub.ErrNotProfileOwner
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.approved[profileID] == nil {
		m.approved[profileID] = make(map[common.Address]bool)
	}
	if approve {
		m.approved[profileID][follower] = true
	} else {
		delete(m.approved[profileID], follower)
	}
	return nil
}

// InitializeFollowModule accepts optional init data listing pre-approved
// follower addresses, 20 bytes each.
func (m *ApprovalFollowModule) InitializeFollowModule(sender common.Address, profileID uint64, data []byte) ([]byte, error) {
	if err := m.CheckHub(sender); err != nil {
		return nil, err
	}
	if len(data)%common.AddressLength != 0 {
		return nil, ErrInitDataInvalid
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.approved[profileID] == nil {
		m.approved[profileID] = make(map[common.Address]bool)
	}
	for off := 0; off < len(data); off += common.AddressLength {
		m.approved[profileID][common.BytesToAddress(data[off:off+common.AddressLength])] = true
	}
	return data, nil
}

// ProcessFollow admits only approved followers, consuming the approval.
func (m *ApprovalFollowModule) ProcessFollow(sender, follower common.Address, profileID uint64, data []byte) error {
	if err := m.CheckHub(sender); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.approved[profileID][follower] {
		return ErrNotFollowing
	}
	delete(m.approved[profileID], follower)
	return nil
}

// IsApproved reports whether a follower currently holds an unused approval.
func (m *ApprovalFollowModule) IsApproved(profileID uint64, follower common.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.approved[profileID][follower]
}

// IsFollowing delegates to the hub's follow token ledger.
func (m *ApprovalFollowModule) IsFollowing(profileID uint64, follower common.Address, followTokenID uint64) (bool, error) {
	return m.hubView.IsFollowing(profileID, follower, followTokenID)
}

var _ modulespkg.FollowModule = (*ApprovalFollowModule)(nil)
