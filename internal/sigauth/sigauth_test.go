package sigauth

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialhub/socialhub-go/internal/store"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

var (
	testGovernance = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testHubAddr    = common.HexToAddress("0x00000000000000000000000000000000000Ab1e5")
)

func testDomain() Domain {
	return Domain{Name: "Social Hub", Version: "1", ChainID: 1, Hub: testHubAddr}
}

func newSigner(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey)
}

// sign builds a signature over the action using the signer's current nonce,
// as a client would after querying GetNonce.
func sign(t *testing.T, key *ecdsa.PrivateKey, v *Verifier, ledger *store.Ledger, action StructHasher, deadline uint64) hub.Signature {
	t.Helper()
	signer := crypto.PubkeyToAddress(key.PublicKey)
	nonce := ledger.Nonce(signer)
	digest := v.Domain().Digest(action.StructHash(nonce, deadline))
	sigBytes, err := crypto.Sign(digest[:], key)
	require.NoError(t, err)
	return hub.Signature{Bytes: sigBytes, Deadline: deadline}
}

func farFuture() uint64 {
	return uint64(nowUnix()) + 3600
}

func TestVerify_RoundTrip(t *testing.T) {
	ledger := store.NewLedger(testGovernance)
	v := NewVerifier(ledger, testDomain())
	key, signer := newSigner(t)

	action := PostAction{Input: hub.PostInput{ProfileID: 1, ContentURI: "ipfs://post"}}
	sig := sign(t, key, v, ledger, action, farFuture())

	require.NoError(t, v.Verify(action, signer, sig))
	assert.Equal(t, uint64(1), ledger.Nonce(signer))
}

func TestVerify_Replay(t *testing.T) {
	ledger := store.NewLedger(testGovernance)
	v := NewVerifier(ledger, testDomain())
	key, signer := newSigner(t)

	action := BurnAction{ProfileID: 7}
	sig := sign(t, key, v, ledger, action, farFuture())

	require.NoError(t, v.Verify(action, signer, sig))

	// The same signature again verifies against nonce 1 and fails
	err := v.Verify(action, signer, sig)
	assert.ErrorIs(t, err, hub.ErrSignatureInvalid)
	assert.Equal(t, uint64(2), ledger.Nonce(signer))
}

func TestVerify_FailureStillBurnsNonce(t *testing.T) {
	ledger := store.NewLedger(testGovernance)
	v := NewVerifier(ledger, testDomain())
	_, signer := newSigner(t)
	otherKey, _ := newSigner(t)

	action := BurnAction{ProfileID: 7}
	sig := sign(t, otherKey, v, ledger, action, farFuture())

	err := v.Verify(action, signer, sig)
	assert.ErrorIs(t, err, hub.ErrSignatureInvalid)
	assert.Equal(t, uint64(1), ledger.Nonce(signer))
}

func TestVerify_Expired(t *testing.T) {
	ledger := store.NewLedger(testGovernance)
	v := NewVerifier(ledger, testDomain())
	key, signer := newSigner(t)

	past := uint64(nowUnix()) - 10
	action := BurnAction{ProfileID: 7}
	sig := sign(t, key, v, ledger, action, past)

	err := v.Verify(action, signer, sig)
	assert.ErrorIs(t, err, hub.ErrSignatureExpired)
	// Expiry burns the nonce too
	assert.Equal(t, uint64(1), ledger.Nonce(signer))
}

func TestVerify_Malformed(t *testing.T) {
	ledger := store.NewLedger(testGovernance)
	v := NewVerifier(ledger, testDomain())
	_, signer := newSigner(t)

	err := v.Verify(BurnAction{ProfileID: 7}, signer, hub.Signature{
		Bytes:    []byte{0x01, 0x02},
		Deadline: farFuture(),
	})
	assert.ErrorIs(t, err, hub.ErrSignatureInvalid)
}

func TestVerify_CancelAllInvalidatesOutstanding(t *testing.T) {
	ledger := store.NewLedger(testGovernance)
	v := NewVerifier(ledger, testDomain())
	key, signer := newSigner(t)

	action := BurnAction{ProfileID: 7}
	sig := sign(t, key, v, ledger, action, farFuture())

	// Bumping the nonce invalidates the already-signed intent
	ledger.ConsumeNonce(signer)

	err := v.Verify(action, signer, sig)
	assert.ErrorIs(t, err, hub.ErrSignatureInvalid)
}

func TestVerify_DifferentActionsDiffer(t *testing.T) {
	ledger := store.NewLedger(testGovernance)
	v := NewVerifier(ledger, testDomain())
	key, signer := newSigner(t)

	signed := PostAction{Input: hub.PostInput{ProfileID: 1, ContentURI: "ipfs://a"}}
	sig := sign(t, key, v, ledger, signed, farFuture())

	// Presenting the signature with altered fields fails
	tampered := PostAction{Input: hub.PostInput{ProfileID: 1, ContentURI: "ipfs://b"}}
	err := v.Verify(tampered, signer, sig)
	assert.ErrorIs(t, err, hub.ErrSignatureInvalid)
}

func TestRecoverSigner_VNormalization(t *testing.T) {
	key, signer := newSigner(t)
	digest := crypto.Keccak256Hash([]byte("message"))

	sig, err := crypto.Sign(digest[:], key)
	require.NoError(t, err)

	t.Run("v in {0,1}", func(t *testing.T) {
		recovered, err := RecoverSigner(digest, sig)
		require.NoError(t, err)
		assert.Equal(t, signer, recovered)
	})

	t.Run("v in {27,28}", func(t *testing.T) {
		legacy := make([]byte, 65)
		copy(legacy, sig)
		legacy[64] += 27
		recovered, err := RecoverSigner(digest, legacy)
		require.NoError(t, err)
		assert.Equal(t, signer, recovered)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := RecoverSigner(digest, sig[:64])
		assert.ErrorIs(t, err, hub.ErrSignatureInvalid)
	})
}

func TestDomain_SeparatorBindsFields(t *testing.T) {
	base := testDomain()

	otherChain := base
	otherChain.ChainID = 137
	assert.NotEqual(t, base.Separator(), otherChain.Separator())

	otherHub := base
	otherHub.Hub = common.HexToAddress("0x00000000000000000000000000000000DEADBEEF")
	assert.NotEqual(t, base.Separator(), otherHub.Separator())

	assert.Equal(t, base.Separator(), testDomain().Separator())
}

func TestStructHash_NonceAndDeadlineBound(t *testing.T) {
	action := CollectAction{Collector: testGovernance, ProfileID: 1, PubID: 2}

	assert.NotEqual(t, action.StructHash(0, 100), action.StructHash(1, 100))
	assert.NotEqual(t, action.StructHash(0, 100), action.StructHash(0, 101))
	assert.Equal(t, action.StructHash(3, 100), action.StructHash(3, 100))
}

func TestStructHash_NilAndEmptyBytesAlike(t *testing.T) {
	withNil := FollowAction{Follower: testGovernance, ProfileIDs: []uint64{1}, Datas: [][]byte{nil}}
	withEmpty := FollowAction{Follower: testGovernance, ProfileIDs: []uint64{1}, Datas: [][]byte{{}}}
	assert.Equal(t, withNil.StructHash(0, 1), withEmpty.StructHash(0, 1))
}
