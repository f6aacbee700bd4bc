package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/socialhub/socialhub-go/internal/hubnode"
	internalmodules "github.com/socialhub/socialhub-go/internal/modules"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

// Shared wallet and module addresses for HTTP API tests.
var (
	testGovernance    = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testAlice         = common.HexToAddress("0xA11Ce00000000000000000000000000000000001")
	testBob           = common.HexToAddress("0xB0B0000000000000000000000000000000000002")
	testCarol         = common.HexToAddress("0xCa01000000000000000000000000000000000003")
	testHubAddr       = common.HexToAddress("0x00000000000000000000000000000000000Ab1e5")
	testCollectModule = common.HexToAddress("0x0000000000000000000000000000000000000C01")
)

// TestServerSetup holds common test dependencies
type TestServerSetup struct {
	Node    *hubnode.Node
	Server  *Server
	Auth    *JWTAuth
	Handler http.Handler
}

// NewTestServerSetup creates an unpaused hub node behind a fully routed HTTP
// server, with the free collect module wired and the test wallets whitelisted
// as profile creators.
func NewTestServerSetup(t *testing.T) *TestServerSetup {
	t.Helper()

	node, err := hubnode.NewNode(hubnode.NewConfig(testHubAddr, testGovernance, 1))
	if err != nil {
		t.Fatalf("Failed to create hub node: %v", err)
	}

	node.Registry().RegisterCollectModule(testCollectModule, internalmodules.NewFreeCollectModule(testHubAddr, node))

	ctx := context.Background()
	for _, addr := range []common.Address{testAlice, testBob, testCarol} {
		if err := node.Whitelist(ctx, testGovernance, hub.ProfileCreatorWhitelist, addr, true); err != nil {
			t.Fatalf("Failed to whitelist creator: %v", err)
		}
	}
	if err := node.Whitelist(ctx, testGovernance, hub.CollectModuleWhitelist, testCollectModule, true); err != nil {
		t.Fatalf("Failed to whitelist collect module: %v", err)
	}
	if err := node.SetState(ctx, testGovernance, hub.Unpaused); err != nil {
		t.Fatalf("Failed to unpause: %v", err)
	}

	server := NewServer(node, Config{
		Port:      "8081",
		SecretKey: "test-secret-key",
		Logger:    zerolog.Nop(),
	})
	if server == nil {
		t.Fatal("Expected server to be created, got nil")
	}

	setup := &TestServerSetup{
		Node:    node,
		Server:  server,
		Auth:    server.jwtAuth,
		Handler: server.setupRoutes(),
	}
	t.Cleanup(func() { _ = node.Close() })
	return setup
}

// GenerateTestToken creates a JWT token for the given wallet address.
func (setup *TestServerSetup) GenerateTestToken(t *testing.T, address common.Address, isAdmin bool) string {
	t.Helper()

	token, _, err := setup.Auth.GenerateToken(address.Hex(), isAdmin)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// Do runs one request through the full middleware and routing stack. A non-nil
// body is JSON encoded; an empty token omits the Authorization header.
func (setup *TestServerSetup) Do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	setup.Handler.ServeHTTP(rr, req)
	return rr
}

// CreateTestProfile creates a profile directly on the node and returns its ID.
func (setup *TestServerSetup) CreateTestProfile(t *testing.T, owner common.Address, handle string) uint64 {
	t.Helper()

	id, err := setup.Node.CreateProfile(context.Background(), owner, hub.CreateProfileInput{
		To:     owner,
		Handle: handle,
	})
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
	return id
}

// CreateTestPost creates a post directly on the node and returns its pub ID.
func (setup *TestServerSetup) CreateTestPost(t *testing.T, caller common.Address, profileID uint64, contentURI string) uint64 {
	t.Helper()

	pubID, err := setup.Node.Post(context.Background(), caller, hub.PostInput{
		ProfileID:     profileID,
		ContentURI:    contentURI,
		CollectModule: testCollectModule,
	})
	if err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return pubID
}
