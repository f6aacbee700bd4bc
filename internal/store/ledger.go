// Package store holds the hub's canonical storage. The Ledger owns every
// durable map (profiles, publications, handle lookups, token ownership,
// whitelists, nonces, governance and protocol state); all other components
// borrow it, they never own it.
//
// Mutating entrypoints run against a Txn overlay and commit atomically: an
// aborted operation leaves no trace. Meta-transaction nonces are the one
// deliberate exception: they are consumed directly against the Ledger so a
// failed signature verification still burns the nonce (see the sigauth
// package).
package store

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/socialhub/socialhub-go/pkg/hub"
)

// PubKey identifies a publication by (profileID, pubID).
type PubKey struct {
	ProfileID uint64
	PubID     uint64
}

// HandleHash returns the lookup key for a handle.
func HandleHash(handle string) common.Hash {
	return crypto.Keccak256Hash([]byte(handle))
}

// Ledger is the canonical storage aggregate. It is safe for concurrent use;
// writers go through Txn.Commit which takes the write lock once.
type Ledger struct {
	mu sync.RWMutex

	profileCounter uint64
	profiles       map[uint64]hub.Profile
	pubs           map[PubKey]hub.Publication
	handles        map[common.Hash]uint64

	owners          map[uint64]common.Address
	approved        map[uint64]common.Address
	dispatchers     map[uint64]common.Address
	defaultProfiles map[common.Address]uint64

	followTokens  map[uint64]map[uint64]common.Address
	collectTokens map[PubKey]map[uint64]common.Address

	whitelists map[hub.WhitelistKind]map[common.Address]bool
	nonces     map[common.Address]uint64

	governance     common.Address
	emergencyAdmin common.Address
	state          hub.ProtocolState
}

// NewLedger creates an empty ledger with the given initial governance
// address. The protocol starts Paused, matching the expectation that
// governance unpauses once modules are whitelisted.
func NewLedger(governance common.Address) *Ledger {
	return &Ledger{
		profiles:        make(map[uint64]hub.Profile),
		pubs:            make(map[PubKey]hub.Publication),
		handles:         make(map[common.Hash]uint64),
		owners:          make(map[uint64]common.Address),
		approved:        make(map[uint64]common.Address),
		dispatchers:     make(map[uint64]common.Address),
		defaultProfiles: make(map[common.Address]uint64),
		followTokens:    make(map[uint64]map[uint64]common.Address),
		collectTokens:   make(map[PubKey]map[uint64]common.Address),
		whitelists: map[hub.WhitelistKind]map[common.Address]bool{
			hub.ProfileCreatorWhitelist:  make(map[common.Address]bool),
			hub.FollowModuleWhitelist:    make(map[common.Address]bool),
			hub.ReferenceModuleWhitelist: make(map[common.Address]bool),
			hub.CollectModuleWhitelist:   make(map[common.Address]bool),
		},
		nonces:     make(map[common.Address]uint64),
		governance: governance,
		state:      hub.Paused,
	}
}

// Begin opens a transaction overlay against the ledger.
func (l *Ledger) Begin() *Txn {
	return newTxn(l)
}

// ConsumeNonce returns the signer's current nonce and increments it by one,
// committing immediately. Called during signature digest construction, before
// verification, so each nonce value is consumed exactly once regardless of
// whether the signed action succeeds.
func (l *Ledger) ConsumeNonce(signer common.Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.nonces[signer]
	l.nonces[signer] = n + 1
	return n
}

// Nonce returns the signer's current nonce.
func (l *Ledger) Nonce(signer common.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nonces[signer]
}

// Profile returns the stored profile struct, if any.
func (l *Ledger) Profile(profileID uint64) (hub.Profile, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.profiles[profileID]
	return p, ok
}

// ProfileExists reports whether a profile ID was ever created.
func (l *Ledger) ProfileExists(profileID uint64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.profiles[profileID]
	return ok
}

// Publication returns the stored publication struct, if any.
func (l *Ledger) Publication(profileID, pubID uint64) (hub.Publication, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.pubs[PubKey{profileID, pubID}]
	return p, ok
}

// ProfileIDByHandle resolves a handle to a profile ID, or zero.
func (l *Ledger) ProfileIDByHandle(handle string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handles[HandleHash(handle)]
}

// Owner returns the profile's current owner. The zero address means the
// profile does not exist or was burned.
func (l *Ledger) Owner(profileID uint64) common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.owners[profileID]
}

// Approved returns the profile's approved operator, or the zero address.
func (l *Ledger) Approved(profileID uint64) common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.approved[profileID]
}

// Dispatcher returns the profile's dispatcher, or the zero address.
func (l *Ledger) Dispatcher(profileID uint64) common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dispatchers[profileID]
}

// DefaultProfile returns the wallet's default profile ID, or zero.
func (l *Ledger) DefaultProfile(wallet common.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.defaultProfiles[wallet]
}

// FollowTokenOwner returns the owner of a follow token, or the zero address.
func (l *Ledger) FollowTokenOwner(profileID, tokenID uint64) common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.followTokens[profileID][tokenID]
}

// HoldsFollowToken reports whether follower owns the given follow token of
// the profile; token ID zero means "any token".
func (l *Ledger) HoldsFollowToken(profileID uint64, follower common.Address, tokenID uint64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tokens := l.followTokens[profileID]
	if tokenID != 0 {
		return tokens[tokenID] == follower
	}
	for _, owner := range tokens {
		if owner == follower {
			return true
		}
	}
	return false
}

// FollowTokenCount returns the number of follow tokens minted for a profile.
func (l *Ledger) FollowTokenCount(profileID uint64) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.followTokens[profileID]))
}

// CollectTokenOwner returns the owner of a collect token, or the zero address.
func (l *Ledger) CollectTokenOwner(profileID, pubID, tokenID uint64) common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collectTokens[PubKey{profileID, pubID}][tokenID]
}

// CollectTokenCount returns the number of collect tokens minted for a
// publication.
func (l *Ledger) CollectTokenCount(profileID, pubID uint64) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.collectTokens[PubKey{profileID, pubID}]))
}

// Whitelisted reports membership in one of the whitelist sets.
func (l *Ledger) Whitelisted(kind hub.WhitelistKind, addr common.Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.whitelists[kind][addr]
}

// Governance returns the governance address.
func (l *Ledger) Governance() common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.governance
}

// EmergencyAdmin returns the emergency admin address.
func (l *Ledger) EmergencyAdmin() common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.emergencyAdmin
}

// State returns the current protocol state.
func (l *Ledger) State() hub.ProtocolState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Counts returns the number of stored profiles and publications. Burned
// profiles count: their structs survive as ghost data.
func (l *Ledger) Counts() (profiles, publications int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.profiles), len(l.pubs)
}
