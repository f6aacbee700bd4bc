package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/socialhub/socialhub-go/internal/hubnode"
)

// TestNewServer tests that we can create a new server instance
func TestNewServer(t *testing.T) {
	node, err := hubnode.NewNode(hubnode.NewConfig(testHubAddr, testGovernance, 1))
	if err != nil {
		t.Fatalf("Failed to create hub node: %v", err)
	}
	defer node.Close()

	server := NewServer(node, Config{
		Port:      "8081",
		SecretKey: "test-secret-key",
		Logger:    zerolog.Nop(),
	})
	if server == nil {
		t.Fatal("Expected server to be created, got nil")
	}

	// Verify server components are initialized
	if server.node == nil {
		t.Error("Expected node to be initialized")
	}
	if server.jwtAuth == nil {
		t.Error("Expected jwtAuth to be initialized")
	}
	if server.handlers == nil {
		t.Error("Expected handlers to be initialized")
	}
	if server.middleware == nil {
		t.Error("Expected middleware to be initialized")
	}
	if server.server == nil {
		t.Error("Expected HTTP server to be initialized")
	}
}

// TestNewServerDefaultSecret tests that a server without an explicit secret
// still issues working tokens
func TestNewServerDefaultSecret(t *testing.T) {
	node, err := hubnode.NewNode(hubnode.NewConfig(testHubAddr, testGovernance, 1))
	if err != nil {
		t.Fatalf("Failed to create hub node: %v", err)
	}
	defer node.Close()

	server := NewServer(node, Config{Port: "8081", Logger: zerolog.Nop()})

	token, _, err := server.jwtAuth.GenerateToken(testAlice.Hex(), false)
	if err != nil {
		t.Fatalf("Failed to generate token with default secret: %v", err)
	}
	if _, err := server.jwtAuth.ValidateToken(token); err != nil {
		t.Errorf("Token from default secret failed validation: %v", err)
	}
}

// TestRouting tests method dispatch and path parsing across the route table
func TestRouting(t *testing.T) {
	setup := NewTestServerSetup(t)
	token := setup.GenerateTestToken(t, testAlice, false)

	cases := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"get_on_post_endpoint", "GET", "/api/v1/publications/post", http.StatusMethodNotAllowed},
		{"delete_on_follow", "DELETE", "/api/v1/follow", http.StatusMethodNotAllowed},
		{"put_on_profiles", "PUT", "/api/v1/profiles", http.StatusMethodNotAllowed},
		{"profiles_missing_id", "GET", "/api/v1/profiles/", http.StatusBadRequest},
		{"profiles_bad_id", "GET", "/api/v1/profiles/abc", http.StatusBadRequest},
		{"profiles_unknown_action", "POST", "/api/v1/profiles/1/frobnicate", http.StatusNotFound},
		{"unknown_sig_action", "POST", "/api/v1/sig/frobnicate", http.StatusNotFound},
		{"get_on_sig", "GET", "/api/v1/sig/post", http.StatusMethodNotAllowed},
		{"nonce_missing_address", "GET", "/api/v1/nonce/", http.StatusBadRequest},
		{"post_on_events", "POST", "/api/v1/events", http.StatusMethodNotAllowed},
		{"unknown_path", "GET", "/unknown", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := setup.Do(t, tc.method, tc.path, token, nil)
			if rr.Code != tc.status {
				t.Errorf("Expected status %d, got %d. Body: %s", tc.status, rr.Code, rr.Body.String())
			}
		})
	}
}

// TestRootEndpoint tests the API info document at /
func TestRootEndpoint(t *testing.T) {
	setup := NewTestServerSetup(t)

	rr := setup.Do(t, "GET", "/", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var info map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("Failed to parse root response: %v", err)
	}
	if info["service"] != "Social Hub HTTP API" {
		t.Errorf("Unexpected service name: %v", info["service"])
	}
	if _, ok := info["endpoints"]; !ok {
		t.Error("Expected endpoints listing in root response")
	}
}

// TestCORSPreflight tests that OPTIONS preflight requests short-circuit with
// the CORS headers set
func TestCORSPreflight(t *testing.T) {
	setup := NewTestServerSetup(t)

	req := httptest.NewRequest("OPTIONS", "/api/v1/profiles", nil)
	rr := httptest.NewRecorder()
	setup.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 for preflight, got %d", rr.Code)
	}
	if origin := rr.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin '*', got %q", origin)
	}
	if headers := rr.Header().Get("Access-Control-Allow-Headers"); headers == "" {
		t.Error("Expected Access-Control-Allow-Headers to be set")
	}
}
