package publishing

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/internal/store"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

// SetFollowModule rebinds (or clears) a profile's follow module.
// Authorization is the facade's job; this validates the whitelist, runs the
// module initializer, and records the change.
func SetFollowModule(txn *store.Txn, env Env, profileID uint64, module common.Address, initData []byte) error {
	profile, ok := txn.Profile(profileID)
	if !ok {
		return hub.ErrProfileDoesNotExist
	}

	returnData, err := initFollowModule(txn, env, profileID, module, initData)
	if err != nil {
		return err
	}

	profile.FollowModule = module
	txn.SetProfile(profileID, profile)
	txn.Emit(hub.EventFollowModuleSet, hub.FollowModuleSetEvent{
		ProfileID:              profileID,
		FollowModule:           module,
		FollowModuleReturnData: returnData,
		Timestamp:              txn.Now(),
	})
	return nil
}

// SetDispatcher sets or clears a profile's delegated publisher.
func SetDispatcher(txn *store.Txn, profileID uint64, dispatcher common.Address) {
	txn.SetDispatcher(profileID, dispatcher)
	txn.Emit(hub.EventDispatcherSet, hub.DispatcherSetEvent{
		ProfileID:  profileID,
		Dispatcher: dispatcher,
		Timestamp:  txn.Now(),
	})
}

// SetProfileImageURI updates a profile's image URI.
func SetProfileImageURI(txn *store.Txn, profileID uint64, imageURI string) error {
	if len(imageURI) > hub.MaxProfileImageURILength {
		return hub.ErrProfileImageURILengthInvalid
	}
	profile, ok := txn.Profile(profileID)
	if !ok {
		return hub.ErrProfileDoesNotExist
	}
	profile.ImageURI = imageURI
	txn.SetProfile(profileID, profile)
	txn.Emit(hub.EventProfileImageURISet, hub.ProfileImageURISetEvent{
		ProfileID: profileID,
		ImageURI:  imageURI,
		Timestamp: txn.Now(),
	})
	return nil
}

// SetFollowNFTURI updates a profile's follow token metadata URI.
func SetFollowNFTURI(txn *store.Txn, profileID uint64, followNFTURI string) error {
	profile, ok := txn.Profile(profileID)
	if !ok {
		return hub.ErrProfileDoesNotExist
	}
	profile.FollowNFTURI = followNFTURI
	txn.SetProfile(profileID, profile)
	txn.Emit(hub.EventFollowNFTURISet, hub.FollowNFTURISetEvent{
		ProfileID:    profileID,
		FollowNFTURI: followNFTURI,
		Timestamp:    txn.Now(),
	})
	return nil
}

// SetDefaultProfile binds a wallet's default profile; profile ID zero
// clears the binding, a nonzero profile must be owned by the wallet.
func SetDefaultProfile(txn *store.Txn, wallet common.Address, profileID uint64) error {
	if profileID != 0 && txn.Owner(profileID) != wallet {
		return hub.ErrNotProfileOwner
	}
	txn.SetDefaultProfile(wallet, profileID)
	txn.Emit(hub.EventDefaultProfileSet, hub.DefaultProfileSetEvent{
		Wallet:    wallet,
		ProfileID: profileID,
		Timestamp: txn.Now(),
	})
	return nil
}

// Transfer moves profile ownership and clears the side bindings that must
// not survive a transfer: the dispatcher, the approved operator, and the
// previous owner's default-profile binding if it pointed here.
func Transfer(txn *store.Txn, profileID uint64, from, to common.Address) {
	txn.SetOwner(profileID, to)
	txn.SetApproved(profileID, common.Address{})

	if txn.Dispatcher(profileID) != (common.Address{}) {
		SetDispatcher(txn, profileID, common.Address{})
	}
	if txn.DefaultProfile(from) == profileID {
		txn.SetDefaultProfile(from, 0)
		txn.Emit(hub.EventDefaultProfileSet, hub.DefaultProfileSetEvent{
			Wallet:    from,
			ProfileID: 0,
			Timestamp: txn.Now(),
		})
	}

	txn.Emit(hub.EventProfileTransferred, hub.ProfileTransferredEvent{
		ProfileID: profileID,
		From:      from,
		To:        to,
		Timestamp: txn.Now(),
	})
}

// Burn soft-deletes a profile: ownership, approval, dispatcher and the
// owner's default binding clear, and the handle is released for reuse. The
// profile struct itself survives so existing publications stay resolvable.
func Burn(txn *store.Txn, profileID uint64, owner common.Address) error {
	profile, ok := txn.Profile(profileID)
	if !ok {
		return hub.ErrProfileDoesNotExist
	}

	txn.ReleaseHandle(store.HandleHash(profile.Handle))
	txn.SetOwner(profileID, common.Address{})
	txn.SetApproved(profileID, common.Address{})
	if txn.Dispatcher(profileID) != (common.Address{}) {
		SetDispatcher(txn, profileID, common.Address{})
	}
	if txn.DefaultProfile(owner) == profileID {
		txn.SetDefaultProfile(owner, 0)
	}

	txn.Emit(hub.EventProfileBurned, hub.ProfileBurnedEvent{
		ProfileID: profileID,
		Owner:     owner,
		Handle:    profile.Handle,
		Timestamp: txn.Now(),
	})
	return nil
}
