package hub

import "errors"

// Authorization errors.
var (
	// ErrNotGovernance is returned when a governance-only entrypoint is called
	// by any other address.
	ErrNotGovernance = errors.New("caller is not the governance address")
	// ErrNotGovernanceOrEmergencyAdmin is returned when SetState is called by
	// an address that is neither governance nor the emergency admin.
	ErrNotGovernanceOrEmergencyAdmin = errors.New("caller is not governance or the emergency admin")
	// ErrNotProfileOwner is returned when an owner-only profile operation is
	// attempted by another address.
	ErrNotProfileOwner = errors.New("caller is not the profile owner")
	// ErrNotProfileOwnerOrDispatcher is returned when a publishing or setter
	// operation is attempted by an address that is neither the profile owner
	// nor its dispatcher.
	ErrNotProfileOwnerOrDispatcher = errors.New("caller is not the profile owner or dispatcher")
	// ErrNotOwnerOrApproved is returned when a burn or transfer is attempted
	// by an address that is neither the owner nor the approved address.
	ErrNotOwnerOrApproved = errors.New("caller is not the profile owner or approved address")
	// ErrNotHub is returned by modules when a processing hook is invoked by
	// any sender other than the hub itself.
	ErrNotHub = errors.New("module hook sender is not the hub")
)

// Protocol state errors.
var (
	// ErrPaused is returned when any mutating entrypoint is called while the
	// protocol state is Paused.
	ErrPaused = errors.New("protocol is paused")
	// ErrPublishingPaused is returned when a publication-creation entrypoint
	// is called while the protocol state is PublishingPaused.
	ErrPublishingPaused = errors.New("publishing is paused")
	// ErrEmergencyAdminCannotUnpause is returned when the emergency admin
	// attempts any transition that does not strictly escalate restriction.
	ErrEmergencyAdminCannotUnpause = errors.New("emergency admin can only escalate the protocol state")
)

// Validation errors.
var (
	// ErrHandleLengthInvalid is returned when a handle is empty or longer
	// than MaxHandleLength bytes.
	ErrHandleLengthInvalid = errors.New("handle length invalid")
	// ErrHandleContainsInvalidCharacters is returned when a handle contains a
	// byte outside [0-9a-z._-].
	ErrHandleContainsInvalidCharacters = errors.New("handle contains invalid characters")
	// ErrHandleTaken is returned when the requested handle is already bound
	// to a profile.
	ErrHandleTaken = errors.New("handle already taken")
	// ErrProfileImageURILengthInvalid is returned when a profile image URI
	// exceeds MaxProfileImageURILength bytes.
	ErrProfileImageURILengthInvalid = errors.New("profile image URI length invalid")
	// ErrProfileCreatorNotWhitelisted is returned when CreateProfile is called
	// by a non-whitelisted creator address.
	ErrProfileCreatorNotWhitelisted = errors.New("profile creator not whitelisted")
	// ErrMintToZeroAddress is returned when CreateProfile is asked to mint a
	// profile to the zero address. Such a profile would have no owner able to
	// publish, transfer, or burn it, and its handle would be lost.
	ErrMintToZeroAddress = errors.New("cannot mint profile to the zero address")
	// ErrFollowModuleNotWhitelisted is returned when binding a follow module
	// that is not on the follow-module whitelist.
	ErrFollowModuleNotWhitelisted = errors.New("follow module not whitelisted")
	// ErrReferenceModuleNotWhitelisted is returned when binding a reference
	// module that is not on the reference-module whitelist.
	ErrReferenceModuleNotWhitelisted = errors.New("reference module not whitelisted")
	// ErrCollectModuleNotWhitelisted is returned when binding a collect module
	// that is not on the collect-module whitelist.
	ErrCollectModuleNotWhitelisted = errors.New("collect module not whitelisted")
	// ErrProfileDoesNotExist is returned when an operation references a
	// profile ID that was never created.
	ErrProfileDoesNotExist = errors.New("profile does not exist")
	// ErrPublicationDoesNotExist is returned when an operation references a
	// publication outside [1, pubCount] for its profile, or when pointer
	// resolution finds an uninitialized slot.
	ErrPublicationDoesNotExist = errors.New("publication does not exist")
	// ErrCannotCommentOnSelf is returned when a comment points at the very
	// publication ID it is about to be assigned.
	ErrCannotCommentOnSelf = errors.New("cannot comment on self")
	// ErrArrayLengthMismatch is returned when parallel array arguments have
	// different lengths.
	ErrArrayLengthMismatch = errors.New("array length mismatch")
	// ErrModuleNotRegistered is returned when a whitelisted module address
	// has no registered implementation to dispatch to.
	ErrModuleNotRegistered = errors.New("module address has no registered implementation")
	// ErrUnknownWhitelistKind is returned when Whitelist is called with a
	// kind outside the defined whitelist sets.
	ErrUnknownWhitelistKind = errors.New("unknown whitelist kind")
)

// Signature errors.
var (
	// ErrSignatureInvalid is returned when a recovered signer does not match
	// the expected signer of record, or the signature is malformed.
	ErrSignatureInvalid = errors.New("signature invalid")
	// ErrSignatureExpired is returned when a signature deadline is strictly
	// in the past.
	ErrSignatureExpired = errors.New("signature expired")
)
