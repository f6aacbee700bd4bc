package modules

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Registry resolves module addresses to their implementations. Whitelisting
// an address (governance) and registering its implementation (deployment
// wiring) are independent steps: the hub checks the whitelist first and then
// dispatches through the registry.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	follow    map[common.Address]FollowModule
	collect   map[common.Address]CollectModule
	reference map[common.Address]ReferenceModule
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{
		follow:    make(map[common.Address]FollowModule),
		collect:   make(map[common.Address]CollectModule),
		reference: make(map[common.Address]ReferenceModule),
	}
}

// RegisterFollowModule binds a follow module implementation to an address.
func (r *Registry) RegisterFollowModule(addr common.Address, m FollowModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.follow[addr] = m
}

// RegisterCollectModule binds a collect module implementation to an address.
func (r *Registry) RegisterCollectModule(addr common.Address, m CollectModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collect[addr] = m
}

// RegisterReferenceModule binds a reference module implementation to an address.
func (r *Registry) RegisterReferenceModule(addr common.Address, m ReferenceModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reference[addr] = m
}

// FollowModule resolves a follow module implementation.
func (r *Registry) FollowModule(addr common.Address) (FollowModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.follow[addr]
	return m, ok
}

// CollectModule resolves a collect module implementation.
func (r *Registry) CollectModule(addr common.Address) (CollectModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.collect[addr]
	return m, ok
}

// ReferenceModule resolves a reference module implementation.
func (r *Registry) ReferenceModule(addr common.Address) (ReferenceModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.reference[addr]
	return m, ok
}
