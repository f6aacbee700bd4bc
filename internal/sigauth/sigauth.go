// Package sigauth implements the meta-transaction authorization path: typed
// structured-data digests, per-signer replay nonces, and recoverable
// secp256k1 signature verification.
//
// Every signed hub entrypoint follows the same algorithm: determine the
// signer of record (an explicit address in the payload, or the current
// profile owner looked up fresh), consume the signer's nonce, build the
// domain-separated digest over the action's fields plus nonce and deadline,
// and recover the signing address.
//
// Deliberate quirk, preserved from the observed protocol design: the nonce
// is consumed against the canonical ledger during digest construction,
// BEFORE the signature is verified. A payload that fails verification (or
// whose business logic later fails) still burns the nonce. Signers cancel
// all outstanding intents the same way, by bumping their own nonce once.
package sigauth

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/socialhub/socialhub-go/internal/store"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

// Domain is the signing domain separating this hub's digests from any other
// deployment's.
type Domain struct {
	// Name is the protocol name bound into every digest.
	Name string
	// Version is the signing-schema version.
	Version string
	// ChainID distinguishes deployments across chains/environments.
	ChainID uint64
	// Hub is the hub address acting as the verifying party.
	Hub common.Address
}

var domainTypeHash = typeHash("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)")

// Separator returns the domain separator hash.
func (d Domain) Separator() common.Hash {
	return hashStruct(domainTypeHash,
		strWord(d.Name),
		strWord(d.Version),
		uintWord(d.ChainID),
		addrWord(d.Hub),
	)
}

// Digest builds the final signable digest for a struct hash:
// keccak256(0x19 0x01 || domainSeparator || structHash).
func (d Domain) Digest(structHash common.Hash) common.Hash {
	sep := d.Separator()
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, sep[:], structHash[:])
}

// Verifier checks signed payloads against the ledger's nonces. Nonce
// consumption goes straight to the ledger, bypassing any transaction
// overlay, so it survives aborted actions.
type Verifier struct {
	ledger *store.Ledger
	domain Domain
	now    func() uint64
}

// NewVerifier creates a verifier over the given ledger and signing domain.
func NewVerifier(ledger *store.Ledger, domain Domain) *Verifier {
	return &Verifier{ledger: ledger, domain: domain, now: unixNow}
}

// Domain returns the verifier's signing domain.
func (v *Verifier) Domain() Domain {
	return v.domain
}

// Verify consumes the expected signer's nonce, folds it into the action's
// struct hash, and checks the signature. Returns hub.ErrSignatureExpired for
// a deadline strictly in the past and hub.ErrSignatureInvalid for a
// malformed signature or wrong recovered signer.
func (v *Verifier) Verify(action StructHasher, expected common.Address, sig hub.Signature) error {
	nonce := v.ledger.ConsumeNonce(expected)
	digest := v.domain.Digest(action.StructHash(nonce, sig.Deadline))

	if sig.Deadline < v.now() {
		return hub.ErrSignatureExpired
	}
	recovered, err := RecoverSigner(digest, sig.Bytes)
	if err != nil {
		return err
	}
	if recovered != expected {
		return hub.ErrSignatureInvalid
	}
	return nil
}

// RecoverSigner recovers the signing address from a digest and a 65-byte
// R || S || V signature. V may be 0/1 or 27/28.
func RecoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, hub.ErrSignatureInvalid
	}
	normalized := make([]byte, 65)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pubKey, err := crypto.SigToPub(digest[:], normalized)
	if err != nil {
		return common.Address{}, hub.ErrSignatureInvalid
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}

func unixNow() uint64 {
	return uint64(nowUnix())
}
