// Package publishing implements profile creation, publication creation
// (posts, comments, mirrors) and the profile setters. Functions operate on a
// store.Txn borrowed from the hub facade; they validate preconditions in
// order, mutate the overlay, invoke module hooks, and buffer the canonical
// events. Nothing here owns storage and nothing here commits.
package publishing

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/internal/store"
	"github.com/socialhub/socialhub-go/pkg/hub"
	"github.com/socialhub/socialhub-go/pkg/modules"
)

// Env carries the module-dispatch context shared by publishing operations:
// the registry resolving module addresses to implementations, and the hub
// address passed to hooks as their sender.
type Env struct {
	Registry *modules.Registry
	HubAddr  common.Address
}

// CreateProfile validates and records a new profile, returning its ID.
//
// Precondition order: creator whitelist, recipient, handle charset and
// length, image URI length, handle uniqueness, then follow module init.
// Module init failures abort the whole operation.
func CreateProfile(txn *store.Txn, env Env, caller common.Address, input hub.CreateProfileInput) (uint64, error) {
	if !txn.Whitelisted(hub.ProfileCreatorWhitelist, caller) {
		return 0, hub.ErrProfileCreatorNotWhitelisted
	}
	if input.To == (common.Address{}) {
		return 0, hub.ErrMintToZeroAddress
	}
	if err := ValidateHandle(input.Handle); err != nil {
		return 0, err
	}
	if len(input.ImageURI) > hub.MaxProfileImageURILength {
		return 0, hub.ErrProfileImageURILengthInvalid
	}

	hash := store.HandleHash(input.Handle)
	if txn.ProfileIDByHandle(hash) != 0 {
		return 0, hub.ErrHandleTaken
	}

	profileID := txn.NextProfileID()

	txn.BindHandle(hash, profileID)
	txn.SetProfile(profileID, hub.Profile{
		Handle:       input.Handle,
		ImageURI:     input.ImageURI,
		FollowModule: input.FollowModule,
		FollowNFTURI: input.FollowNFTURI,
	})
	txn.SetOwner(profileID, input.To)

	followReturn, err := initFollowModule(txn, env, profileID, input.FollowModule, input.FollowModuleInitData)
	if err != nil {
		return 0, err
	}

	txn.Emit(hub.EventProfileCreated, hub.ProfileCreatedEvent{
		ProfileID:              profileID,
		Creator:                caller,
		To:                     input.To,
		Handle:                 input.Handle,
		ImageURI:               input.ImageURI,
		FollowModule:           input.FollowModule,
		FollowModuleReturnData: followReturn,
		FollowNFTURI:           input.FollowNFTURI,
		Timestamp:              txn.Now(),
	})
	return profileID, nil
}

// CreatePost validates and records a post, returning its pub ID.
func CreatePost(txn *store.Txn, env Env, input hub.PostInput) (uint64, error) {
	profile, ok := txn.Profile(input.ProfileID)
	if !ok {
		return 0, hub.ErrProfileDoesNotExist
	}

	pubID := profile.PubCount + 1
	profile.PubCount = pubID
	txn.SetProfile(input.ProfileID, profile)

	// The publication record is written before the module hooks run, so a
	// reentrant module observes the publication it is initializing.
	txn.SetPublication(input.ProfileID, pubID, hub.Publication{
		ContentURI:      input.ContentURI,
		CollectModule:   input.CollectModule,
		ReferenceModule: input.ReferenceModule,
	})

	collectReturn, err := initCollectModule(txn, env, input.ProfileID, pubID, input.CollectModule, input.CollectInitData)
	if err != nil {
		return 0, err
	}
	referenceReturn, err := initReferenceModule(txn, env, input.ProfileID, pubID, input.ReferenceModule, input.ReferenceInitData)
	if err != nil {
		return 0, err
	}

	txn.Emit(hub.EventPostCreated, hub.PostCreatedEvent{
		ProfileID:                 input.ProfileID,
		PubID:                     pubID,
		ContentURI:                input.ContentURI,
		CollectModule:             input.CollectModule,
		CollectModuleReturnData:   collectReturn,
		ReferenceModule:           input.ReferenceModule,
		ReferenceModuleReturnData: referenceReturn,
		Timestamp:                 txn.Now(),
	})
	return pubID, nil
}

// CreateComment validates and records a comment, returning its pub ID. The
// pointed publication must exist and must not be the comment itself; if the
// pointed publication carries a reference module, its ProcessComment hook may
// veto the comment.
func CreateComment(txn *store.Txn, env Env, input hub.CommentInput) (uint64, error) {
	profile, ok := txn.Profile(input.ProfileID)
	if !ok {
		return 0, hub.ErrProfileDoesNotExist
	}
	pubID := profile.PubCount + 1

	if input.PointedProfileID == input.ProfileID && input.PointedPubID == pubID {
		return 0, hub.ErrCannotCommentOnSelf
	}
	if err := validatePointed(txn, input.PointedProfileID, input.PointedPubID); err != nil {
		return 0, err
	}

	profile.PubCount = pubID
	txn.SetProfile(input.ProfileID, profile)
	txn.SetPublication(input.ProfileID, pubID, hub.Publication{
		PointedProfileID: input.PointedProfileID,
		PointedPubID:     input.PointedPubID,
		ContentURI:       input.ContentURI,
		CollectModule:    input.CollectModule,
		ReferenceModule:  input.ReferenceModule,
	})

	collectReturn, err := initCollectModule(txn, env, input.ProfileID, pubID, input.CollectModule, input.CollectInitData)
	if err != nil {
		return 0, err
	}
	referenceReturn, err := initReferenceModule(txn, env, input.ProfileID, pubID, input.ReferenceModule, input.ReferenceInitData)
	if err != nil {
		return 0, err
	}

	if err := processCommentHook(txn, env, input); err != nil {
		return 0, err
	}

	txn.Emit(hub.EventCommentCreated, hub.CommentCreatedEvent{
		ProfileID:                 input.ProfileID,
		PubID:                     pubID,
		ContentURI:                input.ContentURI,
		PointedProfileID:          input.PointedProfileID,
		PointedPubID:              input.PointedPubID,
		CollectModule:             input.CollectModule,
		CollectModuleReturnData:   collectReturn,
		ReferenceModule:           input.ReferenceModule,
		ReferenceModuleReturnData: referenceReturn,
		Timestamp:                 txn.Now(),
	})
	return pubID, nil
}

// CreateMirror validates and records a mirror, returning its pub ID. The
// pointer is collapsed eagerly: the stored pointer always references the
// root post or comment, even when mirroring another mirror. If the root
// carries a reference module, its ProcessMirror hook may veto the mirror.
func CreateMirror(txn *store.Txn, env Env, input hub.MirrorInput) (uint64, error) {
	profile, ok := txn.Profile(input.ProfileID)
	if !ok {
		return 0, hub.ErrProfileDoesNotExist
	}

	if err := validatePointed(txn, input.PointedProfileID, input.PointedPubID); err != nil {
		return 0, err
	}
	rootProfileID, rootPubID, _, err := ResolveRoot(txn, input.PointedProfileID, input.PointedPubID)
	if err != nil {
		return 0, err
	}

	pubID := profile.PubCount + 1
	profile.PubCount = pubID
	txn.SetProfile(input.ProfileID, profile)
	txn.SetPublication(input.ProfileID, pubID, hub.Publication{
		PointedProfileID: rootProfileID,
		PointedPubID:     rootPubID,
		ReferenceModule:  input.ReferenceModule,
	})

	referenceReturn, err := initReferenceModule(txn, env, input.ProfileID, pubID, input.ReferenceModule, input.ReferenceInitData)
	if err != nil {
		return 0, err
	}

	if err := processMirrorHook(txn, env, input.ProfileID, rootProfileID, rootPubID, input.ReferenceData); err != nil {
		return 0, err
	}

	txn.Emit(hub.EventMirrorCreated, hub.MirrorCreatedEvent{
		ProfileID:                 input.ProfileID,
		PubID:                     pubID,
		PointedProfileID:          rootProfileID,
		PointedPubID:              rootPubID,
		ReferenceModule:           input.ReferenceModule,
		ReferenceModuleReturnData: referenceReturn,
		Timestamp:                 txn.Now(),
	})
	return pubID, nil
}

// validatePointed checks that (profileID, pubID) addresses an existing
// publication: pubID in [1, pubCount] of an existing profile.
func validatePointed(txn *store.Txn, profileID, pubID uint64) error {
	pointed, ok := txn.Profile(profileID)
	if !ok || pubID == 0 || pubID > pointed.PubCount {
		return hub.ErrPublicationDoesNotExist
	}
	return nil
}

// initFollowModule initializes an optional follow module binding. The zero
// address is a valid "no module" binding.
func initFollowModule(txn *store.Txn, env Env, profileID uint64, module common.Address, data []byte) ([]byte, error) {
	if module == (common.Address{}) {
		return nil, nil
	}
	if !txn.Whitelisted(hub.FollowModuleWhitelist, module) {
		return nil, hub.ErrFollowModuleNotWhitelisted
	}
	impl, ok := env.Registry.FollowModule(module)
	if !ok {
		return nil, hub.ErrModuleNotRegistered
	}
	return impl.InitializeFollowModule(env.HubAddr, profileID, data)
}

// initCollectModule initializes a collect module binding. The zero address
// is never a valid collect module for a post or comment; it fails the
// whitelist check like any other non-whitelisted address.
func initCollectModule(txn *store.Txn, env Env, profileID, pubID uint64, module common.Address, data []byte) ([]byte, error) {
	if !txn.Whitelisted(hub.CollectModuleWhitelist, module) {
		return nil, hub.ErrCollectModuleNotWhitelisted
	}
	impl, ok := env.Registry.CollectModule(module)
	if !ok {
		return nil, hub.ErrModuleNotRegistered
	}
	return impl.InitializePublicationCollectModule(env.HubAddr, profileID, pubID, data)
}

// initReferenceModule initializes an optional reference module binding.
func initReferenceModule(txn *store.Txn, env Env, profileID, pubID uint64, module common.Address, data []byte) ([]byte, error) {
	if module == (common.Address{}) {
		return nil, nil
	}
	if !txn.Whitelisted(hub.ReferenceModuleWhitelist, module) {
		return nil, hub.ErrReferenceModuleNotWhitelisted
	}
	impl, ok := env.Registry.ReferenceModule(module)
	if !ok {
		return nil, hub.ErrModuleNotRegistered
	}
	return impl.InitializeReferenceModule(env.HubAddr, profileID, pubID, data)
}

// processCommentHook invokes the pointed publication's reference module, if
// any, giving it a chance to veto the comment.
func processCommentHook(txn *store.Txn, env Env, input hub.CommentInput) error {
	pointed, ok := txn.Publication(input.PointedProfileID, input.PointedPubID)
	if !ok {
		return hub.ErrPublicationDoesNotExist
	}
	if pointed.ReferenceModule == (common.Address{}) {
		return nil
	}
	impl, ok := env.Registry.ReferenceModule(pointed.ReferenceModule)
	if !ok {
		return hub.ErrModuleNotRegistered
	}
	return impl.ProcessComment(env.HubAddr, input.ProfileID, input.PointedProfileID, input.PointedPubID, input.ReferenceData)
}

// processMirrorHook invokes the root publication's reference module, if any,
// giving it a chance to veto the mirror.
func processMirrorHook(txn *store.Txn, env Env, profileID, rootProfileID, rootPubID uint64, data []byte) error {
	root, ok := txn.Publication(rootProfileID, rootPubID)
	if !ok {
		return hub.ErrPublicationDoesNotExist
	}
	if root.ReferenceModule == (common.Address{}) {
		return nil
	}
	impl, ok := env.Registry.ReferenceModule(root.ReferenceModule)
	if !ok {
		return hub.ErrModuleNotRegistered
	}
	return impl.ProcessMirror(env.HubAddr, profileID, rootProfileID, rootPubID, data)
}
