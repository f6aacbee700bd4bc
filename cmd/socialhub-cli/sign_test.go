package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialhub/socialhub-go/internal/hubnode"
	"github.com/socialhub/socialhub-go/internal/sigauth"
	"github.com/socialhub/socialhub-go/pkg/httpclient"
)

const testHub = "0x00000000000000000000000000000000000Ab1e5"

// setSignFlags installs signing globals for a test and restores them after.
func setSignFlags(t *testing.T, keyHex string) {
	t.Helper()

	origKey, origHub, origChain := signKeyHex, signHubAddr, signChainID
	origName, origVersion, origValidity := signDomainName, signDomainVersion, signValidity
	t.Cleanup(func() {
		signKeyHex, signHubAddr, signChainID = origKey, origHub, origChain
		signDomainName, signDomainVersion, signValidity = origName, origVersion, origValidity
	})

	signKeyHex = keyHex
	signHubAddr = testHub
	signChainID = 1
	signDomainName = hubnode.DefaultSignerDomainName
	signDomainVersion = hubnode.DefaultSignerDomainVersion
	signValidity = 30 * time.Minute
}

func TestLoadSigningKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wantAddr := crypto.PubkeyToAddress(key.PublicKey)

	t.Run("bare hex", func(t *testing.T) {
		setSignFlags(t, strings.TrimPrefix(hexutil.Encode(crypto.FromECDSA(key)), "0x"))
		_, signer, err := loadSigningKey()
		require.NoError(t, err)
		assert.Equal(t, wantAddr, signer)
	})

	t.Run("0x prefix accepted", func(t *testing.T) {
		setSignFlags(t, hexutil.Encode(crypto.FromECDSA(key)))
		_, signer, err := loadSigningKey()
		require.NoError(t, err)
		assert.Equal(t, wantAddr, signer)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		setSignFlags(t, "not-a-key")
		_, _, err := loadSigningKey()
		assert.Error(t, err)
	})
}

func TestSigningDomain(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	setSignFlags(t, hexutil.Encode(crypto.FromECDSA(key)))

	domain, err := signingDomain()
	require.NoError(t, err)
	assert.Equal(t, hubnode.DefaultSignerDomainName, domain.Name)
	assert.Equal(t, uint64(1), domain.ChainID)

	signHubAddr = "nope"
	_, err = signingDomain()
	assert.Error(t, err)
}

func TestProduceSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)
	setSignFlags(t, hexutil.Encode(crypto.FromECDSA(key)))

	const nonce = uint64(7)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/nonce/"+signer.Hex(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(httpclient.NonceResponse{Address: signer.Hex(), Nonce: nonce})
	}))
	defer server.Close()

	testClient, err := httpclient.NewClient(httpclient.Config{
		ServerURL: server.URL,
		Address:   signer.Hex(),
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)

	origClient := client
	client = testClient
	defer func() { client = origClient }()

	action := sigauth.BurnAction{ProfileID: 42}
	sig, gotSigner, err := produceSignature(context.Background(), action)
	require.NoError(t, err)
	assert.Equal(t, signer, gotSigner)

	// The server-side verifier rebuilds the digest from the same nonce and
	// deadline; the signature must recover to the signing key's address.
	sigBytes, err := hexutil.Decode(sig.Signature)
	require.NoError(t, err)
	require.Len(t, sigBytes, 65)

	domain, err := signingDomain()
	require.NoError(t, err)
	digest := domain.Digest(action.StructHash(nonce, sig.Deadline))
	recovered, err := sigauth.RecoverSigner(digest, sigBytes)
	require.NoError(t, err)
	assert.Equal(t, signer, recovered)

	// A different nonce yields a different digest and a different signer.
	staleDigest := domain.Digest(action.StructHash(nonce+1, sig.Deadline))
	recovered, err = sigauth.RecoverSigner(staleDigest, sigBytes)
	require.NoError(t, err)
	assert.NotEqual(t, signer, recovered)
}
