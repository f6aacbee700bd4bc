package sigauth

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/socialhub/socialhub-go/pkg/hub"
)

// StructHasher is implemented by every signable action. The nonce and
// deadline are folded in as the final two fields of the struct hash, so a
// signature commits to exactly one nonce value and one expiry.
type StructHasher interface {
	StructHash(nonce, deadline uint64) common.Hash
}

// Per-action type hashes. The encodings mirror ABI typed-data hashing:
// dynamic fields (strings, bytes, arrays) are hashed, fixed fields are
// 32-byte words.
var (
	setFollowModuleTypeHash = typeHash(
		"SetFollowModuleWithSig(uint256 profileId,address followModule,bytes data,uint256 nonce,uint256 deadline)")
	setDispatcherTypeHash = typeHash(
		"SetDispatcherWithSig(uint256 profileId,address dispatcher,uint256 nonce,uint256 deadline)")
	setProfileImageURITypeHash = typeHash(
		"SetProfileImageURIWithSig(uint256 profileId,string imageURI,uint256 nonce,uint256 deadline)")
	setFollowNFTURITypeHash = typeHash(
		"SetFollowNFTURIWithSig(uint256 profileId,string followNFTURI,uint256 nonce,uint256 deadline)")
	setDefaultProfileTypeHash = typeHash(
		"SetDefaultProfileWithSig(address wallet,uint256 profileId,uint256 nonce,uint256 deadline)")
	postTypeHash = typeHash(
		"PostWithSig(uint256 profileId,string contentURI,address collectModule,bytes collectModuleInitData,address referenceModule,bytes referenceModuleInitData,uint256 nonce,uint256 deadline)")
	commentTypeHash = typeHash(
		"CommentWithSig(uint256 profileId,string contentURI,uint256 profileIdPointed,uint256 pubIdPointed,bytes referenceModuleData,address collectModule,bytes collectModuleInitData,address referenceModule,bytes referenceModuleInitData,uint256 nonce,uint256 deadline)")
	mirrorTypeHash = typeHash(
		"MirrorWithSig(uint256 profileId,uint256 profileIdPointed,uint256 pubIdPointed,bytes referenceModuleData,address referenceModule,bytes referenceModuleInitData,uint256 nonce,uint256 deadline)")
	followTypeHash = typeHash(
		"FollowWithSig(address follower,uint256[] profileIds,bytes[] datas,uint256 nonce,uint256 deadline)")
	collectTypeHash = typeHash(
		"CollectWithSig(address collector,uint256 profileId,uint256 pubId,bytes data,uint256 nonce,uint256 deadline)")
	burnTypeHash = typeHash(
		"BurnWithSig(uint256 profileId,uint256 nonce,uint256 deadline)")
)

// SetFollowModuleAction is the signable form of SetFollowModule.
type SetFollowModuleAction struct {
	ProfileID    uint64
	FollowModule common.Address
	InitData     []byte
}

func (a SetFollowModuleAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(setFollowModuleTypeHash,
		uintWord(a.ProfileID), addrWord(a.FollowModule), bytesWord(a.InitData),
		uintWord(nonce), uintWord(deadline))
}

// SetDispatcherAction is the signable form of SetDispatcher.
type SetDispatcherAction struct {
	ProfileID  uint64
	Dispatcher common.Address
}

func (a SetDispatcherAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(setDispatcherTypeHash,
		uintWord(a.ProfileID), addrWord(a.Dispatcher),
		uintWord(nonce), uintWord(deadline))
}

// SetProfileImageURIAction is the signable form of SetProfileImageURI.
type SetProfileImageURIAction struct {
	ProfileID uint64
	ImageURI  string
}

func (a SetProfileImageURIAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(setProfileImageURITypeHash,
		uintWord(a.ProfileID), strWord(a.ImageURI),
		uintWord(nonce), uintWord(deadline))
}

// SetFollowNFTURIAction is the signable form of SetFollowNFTURI.
type SetFollowNFTURIAction struct {
	ProfileID    uint64
	FollowNFTURI string
}

func (a SetFollowNFTURIAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(setFollowNFTURITypeHash,
		uintWord(a.ProfileID), strWord(a.FollowNFTURI),
		uintWord(nonce), uintWord(deadline))
}

// SetDefaultProfileAction is the signable form of SetDefaultProfile.
type SetDefaultProfileAction struct {
	Wallet    common.Address
	ProfileID uint64
}

func (a SetDefaultProfileAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(setDefaultProfileTypeHash,
		addrWord(a.Wallet), uintWord(a.ProfileID),
		uintWord(nonce), uintWord(deadline))
}

// PostAction is the signable form of Post.
type PostAction struct {
	Input hub.PostInput
}

func (a PostAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(postTypeHash,
		uintWord(a.Input.ProfileID), strWord(a.Input.ContentURI),
		addrWord(a.Input.CollectModule), bytesWord(a.Input.CollectInitData),
		addrWord(a.Input.ReferenceModule), bytesWord(a.Input.ReferenceInitData),
		uintWord(nonce), uintWord(deadline))
}

// CommentAction is the signable form of Comment.
type CommentAction struct {
	Input hub.CommentInput
}

func (a CommentAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(commentTypeHash,
		uintWord(a.Input.ProfileID), strWord(a.Input.ContentURI),
		uintWord(a.Input.PointedProfileID), uintWord(a.Input.PointedPubID),
		bytesWord(a.Input.ReferenceData),
		addrWord(a.Input.CollectModule), bytesWord(a.Input.CollectInitData),
		addrWord(a.Input.ReferenceModule), bytesWord(a.Input.ReferenceInitData),
		uintWord(nonce), uintWord(deadline))
}

// MirrorAction is the signable form of Mirror.
type MirrorAction struct {
	Input hub.MirrorInput
}

func (a MirrorAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(mirrorTypeHash,
		uintWord(a.Input.ProfileID),
		uintWord(a.Input.PointedProfileID), uintWord(a.Input.PointedPubID),
		bytesWord(a.Input.ReferenceData),
		addrWord(a.Input.ReferenceModule), bytesWord(a.Input.ReferenceInitData),
		uintWord(nonce), uintWord(deadline))
}

// FollowAction is the signable form of Follow.
type FollowAction struct {
	Follower   common.Address
	ProfileIDs []uint64
	Datas      [][]byte
}

func (a FollowAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(followTypeHash,
		addrWord(a.Follower), uintArrayWord(a.ProfileIDs), bytesArrayWord(a.Datas),
		uintWord(nonce), uintWord(deadline))
}

// CollectAction is the signable form of Collect.
type CollectAction struct {
	Collector common.Address
	ProfileID uint64
	PubID     uint64
	Data      []byte
}

func (a CollectAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(collectTypeHash,
		addrWord(a.Collector), uintWord(a.ProfileID), uintWord(a.PubID), bytesWord(a.Data),
		uintWord(nonce), uintWord(deadline))
}

// BurnAction is the signable form of BurnProfile.
type BurnAction struct {
	ProfileID uint64
}

func (a BurnAction) StructHash(nonce, deadline uint64) common.Hash {
	return hashStruct(burnTypeHash,
		uintWord(a.ProfileID),
		uintWord(nonce), uintWord(deadline))
}

// Word encoders.

func typeHash(signature string) common.Hash {
	return crypto.Keccak256Hash([]byte(signature))
}

func hashStruct(typeHash common.Hash, words ...[]byte) common.Hash {
	buf := make([]byte, 0, 32*(len(words)+1))
	buf = append(buf, typeHash[:]...)
	for _, w := range words {
		buf = append(buf, w...)
	}
	return crypto.Keccak256Hash(buf)
}

// uintWord encodes an integer as a 32-byte big-endian word.
func uintWord(v uint64) []byte {
	w := make([]byte, 32)
	for i := 0; i < 8; i++ {
		w[31-i] = byte(v >> (8 * i))
	}
	return w
}

// addrWord left-pads an address to a 32-byte word.
func addrWord(a common.Address) []byte {
	return common.LeftPadBytes(a.Bytes(), 32)
}

// bytesWord hashes dynamic bytes into a word. Nil and empty hash alike.
func bytesWord(b []byte) []byte {
	return crypto.Keccak256(b)
}

// strWord hashes a dynamic string into a word.
func strWord(s string) []byte {
	return crypto.Keccak256([]byte(s))
}

// uintArrayWord hashes a uint array as the hash of its concatenated words.
func uintArrayWord(vs []uint64) []byte {
	buf := make([]byte, 0, 32*len(vs))
	for _, v := range vs {
		buf = append(buf, uintWord(v)...)
	}
	return crypto.Keccak256(buf)
}

// bytesArrayWord hashes a bytes array as the hash of its elements' hashes.
func bytesArrayWord(bs [][]byte) []byte {
	buf := make([]byte, 0, 32*len(bs))
	for _, b := range bs {
		buf = append(buf, crypto.Keccak256(b)...)
	}
	return crypto.Keccak256(buf)
}

func nowUnix() int64 {
	return time.Now().Unix()
}
