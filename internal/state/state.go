// Package state implements the protocol-wide pause state machine and the
// entrypoint gates derived from it.
//
// The state is one of Unpaused, PublishingPaused or Paused, ordered by
// restriction. Governance may set any state at any time (same-state sets are
// no-op successes); the emergency admin may only strictly escalate
// restriction and never back to Unpaused. Every mutating hub entrypoint
// declares one gate, checked once by the facade before any logic runs.
package state

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/internal/store"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

// Gate names the protocol-state precondition of an entrypoint.
type Gate uint8

const (
	// GateNone applies to views and to SetState itself.
	GateNone Gate = iota
	// GateNotPaused blocks the entrypoint only in the Paused state.
	GateNotPaused
	// GatePublishingEnabled blocks the entrypoint in both Paused and
	// PublishingPaused states.
	GatePublishingEnabled
)

// Check validates a gate against the current protocol state.
func Check(s hub.ProtocolState, g Gate) error {
	switch g {
	case GateNone:
		return nil
	case GateNotPaused:
		if s == hub.Paused {
			return hub.ErrPaused
		}
		return nil
	case GatePublishingEnabled:
		if s == hub.Paused {
			return hub.ErrPaused
		}
		if s == hub.PublishingPaused {
			return hub.ErrPublishingPaused
		}
		return nil
	default:
		return nil
	}
}

// Set validates and applies a protocol state transition.
//
// Governance transitions are unconditional; setting the current state again
// succeeds and still emits a StateSet event. The emergency admin may only
// move to a strictly more restrictive state, so any attempt while already
// Paused fails, as does any same-state set.
func Set(txn *store.Txn, caller common.Address, newState hub.ProtocolState) error {
	prev := txn.State()

	switch {
	case caller == txn.Governance():
		// Unconditional, idempotent.
	case caller != (common.Address{}) && caller == txn.EmergencyAdmin():
		if newState == hub.Unpaused {
			return hub.ErrEmergencyAdminCannotUnpause
		}
		if newState <= prev {
			return hub.ErrEmergencyAdminCannotUnpause
		}
	default:
		return hub.ErrNotGovernanceOrEmergencyAdmin
	}

	txn.SetState(newState)
	txn.Emit(hub.EventStateSet, hub.StateSetEvent{
		Caller:    caller,
		PrevState: prev,
		NewState:  newState,
		Timestamp: txn.Now(),
	})
	return nil
}

// RequireGovernance returns hub.ErrNotGovernance unless caller is the
// current governance address.
func RequireGovernance(txn *store.Txn, caller common.Address) error {
	if caller != txn.Governance() {
		return hub.ErrNotGovernance
	}
	return nil
}
