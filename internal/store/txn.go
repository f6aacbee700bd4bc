package store

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/pkg/feed"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

// Txn is a read-through, copy-on-write overlay over the Ledger. Logic
// components mutate the overlay freely; nothing reaches the ledger until
// Commit, and discarding the Txn aborts the whole operation.
//
// A Txn also buffers the events produced by the operation. They are returned
// by Commit so the facade can publish them to the feed only after the state
// change is durable.
//
// A Txn is not safe for concurrent use; the hub facade serializes mutating
// entrypoints, matching the protocol's strictly serial execution model.
type Txn struct {
	ledger *Ledger
	now    time.Time

	profileCounter *uint64
	governance     *common.Address
	emergencyAdmin *common.Address
	state          *hub.ProtocolState

	profiles        map[uint64]hub.Profile
	pubs            map[PubKey]hub.Publication
	handles         map[common.Hash]uint64
	owners          map[uint64]common.Address
	approved        map[uint64]common.Address
	dispatchers     map[uint64]common.Address
	defaultProfiles map[common.Address]uint64
	followTokens    map[uint64]map[uint64]common.Address
	collectTokens   map[PubKey]map[uint64]common.Address
	whitelists      map[hub.WhitelistKind]map[common.Address]bool

	events []*feed.Event
}

func newTxn(l *Ledger) *Txn {
	return &Txn{
		ledger:          l,
		now:             time.Now().UTC(),
		profiles:        make(map[uint64]hub.Profile),
		pubs:            make(map[PubKey]hub.Publication),
		handles:         make(map[common.Hash]uint64),
		owners:          make(map[uint64]common.Address),
		approved:        make(map[uint64]common.Address),
		dispatchers:     make(map[uint64]common.Address),
		defaultProfiles: make(map[common.Address]uint64),
		followTokens:    make(map[uint64]map[uint64]common.Address),
		collectTokens:   make(map[PubKey]map[uint64]common.Address),
		whitelists:      make(map[hub.WhitelistKind]map[common.Address]bool),
	}
}

// Now returns the single timestamp used for every event and state change in
// this transaction.
func (t *Txn) Now() time.Time {
	return t.now
}

// Emit buffers a canonical event for publication on commit.
func (t *Txn) Emit(name string, payload interface{}) {
	t.events = append(t.events, feed.NewEvent(name, payload, t.now))
}

// NextProfileID assigns the next profile ID from the global counter.
func (t *Txn) NextProfileID() uint64 {
	if t.profileCounter == nil {
		c := t.ledger.profileCounterSnapshot()
		t.profileCounter = &c
	}
	*t.profileCounter++
	return *t.profileCounter
}

// Profile reads a profile through the overlay.
func (t *Txn) Profile(profileID uint64) (hub.Profile, bool) {
	if p, ok := t.profiles[profileID]; ok {
		return p, true
	}
	return t.ledger.Profile(profileID)
}

// SetProfile writes a profile into the overlay.
func (t *Txn) SetProfile(profileID uint64, p hub.Profile) {
	t.profiles[profileID] = p
}

// Publication reads a publication through the overlay.
func (t *Txn) Publication(profileID, pubID uint64) (hub.Publication, bool) {
	if p, ok := t.pubs[PubKey{profileID, pubID}]; ok {
		return p, true
	}
	return t.ledger.Publication(profileID, pubID)
}

// SetPublication writes a publication into the overlay.
func (t *Txn) SetPublication(profileID, pubID uint64, p hub.Publication) {
	t.pubs[PubKey{profileID, pubID}] = p
}

// ProfileIDByHandle resolves a handle hash through the overlay. Zero means
// unbound.
func (t *Txn) ProfileIDByHandle(hash common.Hash) uint64 {
	if id, ok := t.handles[hash]; ok {
		return id
	}
	t.ledger.mu.RLock()
	defer t.ledger.mu.RUnlock()
	return t.ledger.handles[hash]
}

// BindHandle binds a handle hash to a profile ID.
func (t *Txn) BindHandle(hash common.Hash, profileID uint64) {
	t.handles[hash] = profileID
}

// ReleaseHandle frees a handle hash for reuse.
func (t *Txn) ReleaseHandle(hash common.Hash) {
	t.handles[hash] = 0
}

// Owner reads a profile's owner through the overlay.
func (t *Txn) Owner(profileID uint64) common.Address {
	if a, ok := t.owners[profileID]; ok {
		return a
	}
	return t.ledger.Owner(profileID)
}

// SetOwner writes a profile's owner; the zero address clears ownership (burn).
func (t *Txn) SetOwner(profileID uint64, owner common.Address) {
	t.owners[profileID] = owner
}

// Approved reads a profile's approved operator through the overlay.
func (t *Txn) Approved(profileID uint64) common.Address {
	if a, ok := t.approved[profileID]; ok {
		return a
	}
	return t.ledger.Approved(profileID)
}

// SetApproved writes a profile's approved operator.
func (t *Txn) SetApproved(profileID uint64, addr common.Address) {
	t.approved[profileID] = addr
}

// Dispatcher reads a profile's dispatcher through the overlay.
func (t *Txn) Dispatcher(profileID uint64) common.Address {
	if a, ok := t.dispatchers[profileID]; ok {
		return a
	}
	return t.ledger.Dispatcher(profileID)
}

// SetDispatcher writes a profile's dispatcher.
func (t *Txn) SetDispatcher(profileID uint64, dispatcher common.Address) {
	t.dispatchers[profileID] = dispatcher
}

// DefaultProfile reads a wallet's default profile through the overlay.
func (t *Txn) DefaultProfile(wallet common.Address) uint64 {
	if id, ok := t.defaultProfiles[wallet]; ok {
		return id
	}
	return t.ledger.DefaultProfile(wallet)
}

// SetDefaultProfile writes a wallet's default profile; zero clears it.
func (t *Txn) SetDefaultProfile(wallet common.Address, profileID uint64) {
	t.defaultProfiles[wallet] = profileID
}

// MintFollowToken mints the next follow token of a profile to the given
// owner and returns its token ID. The caller updates PubCount-style counters
// through SetProfile; the follow mint counter lives on the profile struct and
// is updated here.
func (t *Txn) MintFollowToken(profileID uint64, to common.Address) (uint64, bool) {
	p, ok := t.Profile(profileID)
	if !ok {
		return 0, false
	}
	p.FollowTokensMinted++
	tokenID := p.FollowTokensMinted
	t.SetProfile(profileID, p)
	if t.followTokens[profileID] == nil {
		t.followTokens[profileID] = make(map[uint64]common.Address)
	}
	t.followTokens[profileID][tokenID] = to
	return tokenID, true
}

// HoldsFollowToken reads follow token ownership through the overlay; token
// ID zero means "any token".
func (t *Txn) HoldsFollowToken(profileID uint64, follower common.Address, tokenID uint64) bool {
	if tokens := t.followTokens[profileID]; tokens != nil {
		if tokenID != 0 {
			if owner, ok := tokens[tokenID]; ok {
				return owner == follower
			}
		} else {
			for _, owner := range tokens {
				if owner == follower {
					return true
				}
			}
		}
	}
	return t.ledger.HoldsFollowToken(profileID, follower, tokenID)
}

// MintCollectToken mints the next collect token of a publication to the
// given owner and returns its token ID.
func (t *Txn) MintCollectToken(profileID, pubID uint64, to common.Address) (uint64, bool) {
	pub, ok := t.Publication(profileID, pubID)
	if !ok {
		return 0, false
	}
	pub.CollectTokensMinted++
	tokenID := pub.CollectTokensMinted
	t.SetPublication(profileID, pubID, pub)
	key := PubKey{profileID, pubID}
	if t.collectTokens[key] == nil {
		t.collectTokens[key] = make(map[uint64]common.Address)
	}
	t.collectTokens[key][tokenID] = to
	return tokenID, true
}

// Whitelisted reads whitelist membership through the overlay.
func (t *Txn) Whitelisted(kind hub.WhitelistKind, addr common.Address) bool {
	if set, ok := t.whitelists[kind]; ok {
		if v, ok := set[addr]; ok {
			return v
		}
	}
	return t.ledger.Whitelisted(kind, addr)
}

// SetWhitelisted writes whitelist membership into the overlay.
func (t *Txn) SetWhitelisted(kind hub.WhitelistKind, addr common.Address, whitelisted bool) {
	if t.whitelists[kind] == nil {
		t.whitelists[kind] = make(map[common.Address]bool)
	}
	t.whitelists[kind][addr] = whitelisted
}

// Governance reads the governance address through the overlay.
func (t *Txn) Governance() common.Address {
	if t.governance != nil {
		return *t.governance
	}
	return t.ledger.Governance()
}

// SetGovernance writes the governance address into the overlay.
func (t *Txn) SetGovernance(addr common.Address) {
	t.governance = &addr
}

// EmergencyAdmin reads the emergency admin through the overlay.
func (t *Txn) EmergencyAdmin() common.Address {
	if t.emergencyAdmin != nil {
		return *t.emergencyAdmin
	}
	return t.ledger.EmergencyAdmin()
}

// SetEmergencyAdmin writes the emergency admin into the overlay.
func (t *Txn) SetEmergencyAdmin(addr common.Address) {
	t.emergencyAdmin = &addr
}

// State reads the protocol state through the overlay.
func (t *Txn) State() hub.ProtocolState {
	if t.state != nil {
		return *t.state
	}
	return t.ledger.State()
}

// SetState writes the protocol state into the overlay.
func (t *Txn) SetState(s hub.ProtocolState) {
	t.state = &s
}

// Commit applies the overlay to the ledger under its write lock and returns
// the buffered events for publication. The Txn must not be reused after
// Commit.
func (t *Txn) Commit() []*feed.Event {
	l := t.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.profileCounter != nil {
		l.profileCounter = *t.profileCounter
	}
	for id, p := range t.profiles {
		l.profiles[id] = p
	}
	for key, p := range t.pubs {
		l.pubs[key] = p
	}
	for hash, id := range t.handles {
		if id == 0 {
			delete(l.handles, hash)
		} else {
			l.handles[hash] = id
		}
	}
	applyAddrMap(l.owners, t.owners)
	applyAddrMap(l.approved, t.approved)
	applyAddrMap(l.dispatchers, t.dispatchers)
	for wallet, id := range t.defaultProfiles {
		if id == 0 {
			delete(l.defaultProfiles, wallet)
		} else {
			l.defaultProfiles[wallet] = id
		}
	}
	for profileID, tokens := range t.followTokens {
		if l.followTokens[profileID] == nil {
			l.followTokens[profileID] = make(map[uint64]common.Address, len(tokens))
		}
		for tokenID, owner := range tokens {
			l.followTokens[profileID][tokenID] = owner
		}
	}
	for key, tokens := range t.collectTokens {
		if l.collectTokens[key] == nil {
			l.collectTokens[key] = make(map[uint64]common.Address, len(tokens))
		}
		for tokenID, owner := range tokens {
			l.collectTokens[key][tokenID] = owner
		}
	}
	for kind, set := range t.whitelists {
		for addr, v := range set {
			if v {
				l.whitelists[kind][addr] = true
			} else {
				delete(l.whitelists[kind], addr)
			}
		}
	}
	if t.governance != nil {
		l.governance = *t.governance
	}
	if t.emergencyAdmin != nil {
		l.emergencyAdmin = *t.emergencyAdmin
	}
	if t.state != nil {
		l.state = *t.state
	}

	return t.events
}

// applyAddrMap merges an overlay address map; the zero address deletes.
func applyAddrMap(dst, overlay map[uint64]common.Address) {
	for id, addr := range overlay {
		if addr == (common.Address{}) {
			delete(dst, id)
		} else {
			dst[id] = addr
		}
	}
}

func (l *Ledger) profileCounterSnapshot() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.profileCounter
}
