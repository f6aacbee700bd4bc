// Package interaction implements the follow and collect operations. Like the
// publishing package it operates on a borrowed store.Txn, invokes module
// hooks through the shared publishing.Env, and buffers canonical events;
// the hub facade owns authorization and commit.
package interaction

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/internal/publishing"
	"github.com/socialhub/socialhub-go/internal/store"
	"github.com/socialhub/socialhub-go/pkg/hub"
	"github.com/socialhub/socialhub-go/pkg/modules"
)

// Follow follows each listed profile with the matching module data and
// returns the minted follow token IDs. Every profile in the batch is
// validated before any follow module hook runs: hooks live outside the txn
// overlay, so their side effects would survive an abort on a later profile.
// Once the hooks start, a hook error still vetoes the whole batch.
func Follow(txn *store.Txn, env publishing.Env, follower common.Address, profileIDs []uint64, datas [][]byte) ([]uint64, error) {
	if len(profileIDs) != len(datas) {
		return nil, hub.ErrArrayLengthMismatch
	}

	mods := make([]modules.FollowModule, len(profileIDs))
	for i, profileID := range profileIDs {
		profile, ok := txn.Profile(profileID)
		if !ok {
			return nil, hub.ErrProfileDoesNotExist
		}
		if profile.FollowModule != (common.Address{}) {
			impl, ok := env.Registry.FollowModule(profile.FollowModule)
			if !ok {
				return nil, hub.ErrModuleNotRegistered
			}
			mods[i] = impl
		}
	}

	tokenIDs := make([]uint64, 0, len(profileIDs))
	for i, profileID := range profileIDs {
		if mods[i] != nil {
			if err := mods[i].ProcessFollow(env.HubAddr, follower, profileID, datas[i]); err != nil {
				return nil, err
			}
		}

		tokenID, ok := txn.MintFollowToken(profileID, follower)
		if !ok {
			return nil, hub.ErrProfileDoesNotExist
		}
		tokenIDs = append(tokenIDs, tokenID)

		txn.Emit(hub.EventFollowNFTTransferred, hub.FollowNFTTransferredEvent{
			ProfileID: profileID,
			TokenID:   tokenID,
			To:        follower,
			Timestamp: txn.Now(),
		})
	}

	txn.Emit(hub.EventFollowed, hub.FollowedEvent{
		Follower:   follower,
		ProfileIDs: profileIDs,
		TokenIDs:   tokenIDs,
		Timestamp:  txn.Now(),
	})
	return tokenIDs, nil
}

// Collect mints a collect token against the root of the given publication
// and returns the token ID. Collecting through a mirror is transparent: the
// root's collect module decides, with the mirror's profile passed as the
// referrer, and the token is minted against the root.
func Collect(txn *store.Txn, env publishing.Env, collector common.Address, profileID, pubID uint64, data []byte) (uint64, error) {
	rootProfileID, rootPubID, collectModule, err := publishing.ResolveRoot(txn, profileID, pubID)
	if err != nil {
		return 0, err
	}

	var referrerProfileID uint64
	if rootProfileID != profileID || rootPubID != pubID {
		referrerProfileID = profileID
	}

	impl, ok := env.Registry.CollectModule(collectModule)
	if !ok {
		return 0, hub.ErrModuleNotRegistered
	}
	if err := impl.ProcessCollect(env.HubAddr, referrerProfileID, collector, rootProfileID, rootPubID, data); err != nil {
		return 0, err
	}

	tokenID, ok := txn.MintCollectToken(rootProfileID, rootPubID, collector)
	if !ok {
		return 0, hub.ErrPublicationDoesNotExist
	}

	txn.Emit(hub.EventCollectNFTTransferred, hub.CollectNFTTransferredEvent{
		ProfileID: rootProfileID,
		PubID:     rootPubID,
		TokenID:   tokenID,
		To:        collector,
		Timestamp: txn.Now(),
	})
	txn.Emit(hub.EventCollected, hub.CollectedEvent{
		Collector:     collector,
		ProfileID:     profileID,
		PubID:         pubID,
		RootProfileID: rootProfileID,
		RootPubID:     rootPubID,
		TokenID:       tokenID,
		Timestamp:     txn.Now(),
	})
	return tokenID, nil
}
