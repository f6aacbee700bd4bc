package main

import (
	"context"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialhub/socialhub-go/internal/hubnode"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

func newTestNode(t *testing.T) (*hubnode.Node, common.Address) {
	t.Helper()

	governance := common.HexToAddress("0x1000000000000000000000000000000000000001")
	hubAddr := common.HexToAddress("0x00000000000000000000000000000000000Ab1e5")

	node, err := hubnode.NewNode(hubnode.NewConfig(hubAddr, governance, 1))
	require.NoError(t, err)
	t.Cleanup(func() { node.Close() })

	return node, governance
}

func TestRegisterBuiltinModules(t *testing.T) {
	node, _ := newTestNode(t)

	registerBuiltinModules(node)

	registry := node.Registry()
	_, ok := registry.CollectModule(freeCollectAddr)
	assert.True(t, ok, "free collect module should be registered")
	_, ok = registry.CollectModule(revertCollectAddr)
	assert.True(t, ok, "revert collect module should be registered")
	_, ok = registry.ReferenceModule(followerOnlyRefAddr)
	assert.True(t, ok, "follower-only reference module should be registered")
	_, ok = registry.FollowModule(approvalFollowAddr)
	assert.True(t, ok, "approval follow module should be registered")
}

func TestBootstrapProtocol(t *testing.T) {
	node, governance := newTestNode(t)
	registerBuiltinModules(node)

	require.NoError(t, bootstrapProtocol(node, governance))

	assert.Equal(t, hub.Unpaused, node.GetState())
	assert.True(t, node.IsWhitelisted(hub.CollectModuleWhitelist, freeCollectAddr))
	assert.True(t, node.IsWhitelisted(hub.CollectModuleWhitelist, revertCollectAddr))
	assert.True(t, node.IsWhitelisted(hub.ReferenceModuleWhitelist, followerOnlyRefAddr))
	assert.True(t, node.IsWhitelisted(hub.FollowModuleWhitelist, approvalFollowAddr))
	assert.True(t, node.IsWhitelisted(hub.ProfileCreatorWhitelist, governance))

	// Bootstrapped node accepts profile creation from governance
	profileID, err := node.CreateProfile(context.Background(), governance, hub.CreateProfileInput{
		To:       governance,
		Handle:   "deployer",
		ImageURI: "ipfs://deployer",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), profileID)
}

func TestBootstrapProtocol_NonGovernanceFails(t *testing.T) {
	node, _ := newTestNode(t)
	registerBuiltinModules(node)

	stranger := common.HexToAddress("0x2000000000000000000000000000000000000002")
	err := bootstrapProtocol(node, stranger)
	require.Error(t, err)
	assert.ErrorIs(t, err, hub.ErrNotGovernance)
}

func TestNewLogger(t *testing.T) {
	log := newLogger("debug")
	assert.Equal(t, "debug", log.GetLevel().String())

	// Unknown levels fall back to info
	log = newLogger("nonsense")
	assert.Equal(t, "info", log.GetLevel().String())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SOCIALHUB_TEST_STR", "value")
	assert.Equal(t, "value", envOr("SOCIALHUB_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", envOr("SOCIALHUB_TEST_MISSING", "fallback"))

	t.Setenv("SOCIALHUB_TEST_UINT", "42")
	assert.Equal(t, uint64(42), envUint("SOCIALHUB_TEST_UINT", 1))
	t.Setenv("SOCIALHUB_TEST_UINT", "not-a-number")
	assert.Equal(t, uint64(1), envUint("SOCIALHUB_TEST_UINT", 1))
}

func TestWellKnownAddressesDistinct(t *testing.T) {
	addrs := []common.Address{freeCollectAddr, revertCollectAddr, followerOnlyRefAddr, approvalFollowAddr}
	seen := map[common.Address]bool{}
	for _, a := range addrs {
		assert.False(t, seen[a], "duplicate module address %s", a.Hex())
		assert.False(t, strings.EqualFold(a.Hex(), (common.Address{}).Hex()), "module address must be nonzero")
		seen[a] = true
	}
}
