package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/pkg/hub"
)

// TestProfileEndpoints tests the profile lifecycle over HTTP
func TestProfileEndpoints(t *testing.T) {
	setup := NewTestServerSetup(t)
	aliceToken := setup.GenerateTestToken(t, testAlice, false)
	bobToken := setup.GenerateTestToken(t, testBob, false)

	t.Run("create_requires_auth", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles", "", CreateProfileRequest{
			To:     testAlice.Hex(),
			Handle: "alice",
		})
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rr.Code)
		}
	})

	t.Run("create", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles", aliceToken, CreateProfileRequest{
			To:       testAlice.Hex(),
			Handle:   "alice",
			ImageURI: "ipfs://alice",
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", rr.Code, rr.Body.String())
		}

		var resp ProfileResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse profile response: %v", err)
		}
		if resp.ProfileID != 1 {
			t.Errorf("Expected profile ID 1, got %d", resp.ProfileID)
		}
		if resp.Handle != "alice" {
			t.Errorf("Expected handle 'alice', got %q", resp.Handle)
		}
		if resp.Owner != testAlice.Hex() {
			t.Errorf("Expected owner %q, got %q", testAlice.Hex(), resp.Owner)
		}
	})

	t.Run("create_duplicate_handle", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles", bobToken, CreateProfileRequest{
			To:     testBob.Hex(),
			Handle: "alice",
		})
		if rr.Code != http.StatusConflict {
			t.Errorf("Expected status 409 for taken handle, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("create_invalid_handle", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles", bobToken, CreateProfileRequest{
			To:     testBob.Hex(),
			Handle: "Bob",
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for invalid handle, got %d", rr.Code)
		}
	})

	t.Run("create_missing_recipient", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles", bobToken, CreateProfileRequest{
			Handle: "orphan",
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for missing recipient, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		// The handle stays free
		rr = setup.Do(t, "GET", "/api/v1/profiles/by-handle/orphan", "", nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 for unbound handle, got %d", rr.Code)
		}
	})

	t.Run("create_not_whitelisted", func(t *testing.T) {
		stranger := common.HexToAddress("0xDEad000000000000000000000000000000000004")
		strangerToken := setup.GenerateTestToken(t, stranger, false)
		rr := setup.Do(t, "POST", "/api/v1/profiles", strangerToken, CreateProfileRequest{
			To:     stranger.Hex(),
			Handle: "stranger",
		})
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403 for non-whitelisted creator, got %d", rr.Code)
		}
	})

	t.Run("get_by_id", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/profiles/1", "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		var resp ProfileResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse profile response: %v", err)
		}
		if resp.Handle != "alice" {
			t.Errorf("Expected handle 'alice', got %q", resp.Handle)
		}
	})

	t.Run("get_missing", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/profiles/999", "", nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})

	t.Run("get_by_handle", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/profiles/by-handle/alice", "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		var resp ProfileResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse profile response: %v", err)
		}
		if resp.ProfileID != 1 {
			t.Errorf("Expected profile ID 1, got %d", resp.ProfileID)
		}
	})

	t.Run("get_by_unknown_handle", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/profiles/by-handle/nobody", "", nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})

	t.Run("set_dispatcher", func(t *testing.T) {
		// A non-owner may not set the dispatcher
		rr := setup.Do(t, "POST", "/api/v1/profiles/1/dispatcher", bobToken, SetDispatcherRequest{
			Dispatcher: testCarol.Hex(),
		})
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403 for non-owner, got %d", rr.Code)
		}

		rr = setup.Do(t, "POST", "/api/v1/profiles/1/dispatcher", aliceToken, SetDispatcherRequest{
			Dispatcher: testCarol.Hex(),
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		var resp ProfileResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse profile response: %v", err)
		}
		if resp.Dispatcher != testCarol.Hex() {
			t.Errorf("Expected dispatcher %q, got %q", testCarol.Hex(), resp.Dispatcher)
		}
	})

	t.Run("set_image_uri", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles/1/image-uri", aliceToken, SetImageURIRequest{
			ImageURI: "ipfs://alice-v2",
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		var resp ProfileResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse profile response: %v", err)
		}
		if resp.ImageURI != "ipfs://alice-v2" {
			t.Errorf("Expected updated image URI, got %q", resp.ImageURI)
		}
	})

	t.Run("set_default_profile", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles/default", aliceToken, SetDefaultProfileRequest{
			ProfileID: 1,
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("transfer", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/profiles/1/transfer", aliceToken, TransferRequest{
			To: testBob.Hex(),
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		var resp ProfileResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse profile response: %v", err)
		}
		if resp.Owner != testBob.Hex() {
			t.Errorf("Expected owner %q after transfer, got %q", testBob.Hex(), resp.Owner)
		}
		if resp.Dispatcher != (common.Address{}).Hex() {
			t.Errorf("Expected transfer to clear the dispatcher, got %q", resp.Dispatcher)
		}

		// The old owner has no powers left
		rr = setup.Do(t, "POST", "/api/v1/profiles/1/image-uri", aliceToken, SetImageURIRequest{
			ImageURI: "ipfs://stale",
		})
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403 for old owner, got %d", rr.Code)
		}
	})

	t.Run("burn", func(t *testing.T) {
		rr := setup.Do(t, "DELETE", "/api/v1/profiles/1", bobToken, nil)
		if rr.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d. Body: %s", rr.Code, rr.Body.String())
		}

		// The handle is released
		rr = setup.Do(t, "GET", "/api/v1/profiles/by-handle/alice", "", nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 for released handle, got %d", rr.Code)
		}

		// The ghost record remains readable with a zero owner
		rr = setup.Do(t, "GET", "/api/v1/profiles/1", "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200 for ghost profile, got %d", rr.Code)
		}
		var resp ProfileResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse profile response: %v", err)
		}
		if resp.Owner != (common.Address{}).Hex() {
			t.Errorf("Expected zero owner after burn, got %q", resp.Owner)
		}
	})
}

// TestPublicationEndpoints tests post, comment, and mirror over HTTP
func TestPublicationEndpoints(t *testing.T) {
	setup := NewTestServerSetup(t)
	aliceToken := setup.GenerateTestToken(t, testAlice, false)
	bobToken := setup.GenerateTestToken(t, testBob, false)

	aliceID := setup.CreateTestProfile(t, testAlice, "alice")
	bobID := setup.CreateTestProfile(t, testBob, "bob")

	t.Run("post", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/publications/post", aliceToken, PostRequest{
			ProfileID:     aliceID,
			ContentURI:    "ipfs://post-1",
			CollectModule: testCollectModule.Hex(),
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		var resp PublicationCreatedResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.ProfileID != aliceID || resp.PubID != 1 {
			t.Errorf("Expected publication (%d, 1), got (%d, %d)", aliceID, resp.ProfileID, resp.PubID)
		}
	})

	t.Run("post_unwhitelisted_collect_module", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/publications/post", aliceToken, PostRequest{
			ProfileID:     aliceID,
			ContentURI:    "ipfs://post-x",
			CollectModule: "0x0000000000000000000000000000000000000999",
		})
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("post_for_unowned_profile", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/publications/post", bobToken, PostRequest{
			ProfileID:     aliceID,
			ContentURI:    "ipfs://hijack",
			CollectModule: testCollectModule.Hex(),
		})
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", rr.Code)
		}
	})

	t.Run("comment", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/publications/comment", bobToken, CommentRequest{
			ProfileID:        bobID,
			ContentURI:       "ipfs://comment-1",
			PointedProfileID: aliceID,
			PointedPubID:     1,
			CollectModule:    testCollectModule.Hex(),
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("comment_on_missing_publication", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/publications/comment", bobToken, CommentRequest{
			ProfileID:        bobID,
			ContentURI:       "ipfs://comment-x",
			PointedProfileID: aliceID,
			PointedPubID:     999,
			CollectModule:    testCollectModule.Hex(),
		})
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})

	t.Run("mirror", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/publications/mirror", bobToken, MirrorRequest{
			ProfileID:        bobID,
			PointedProfileID: aliceID,
			PointedPubID:     1,
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		var resp PublicationCreatedResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.PubID != 2 {
			t.Errorf("Expected pub ID 2, got %d", resp.PubID)
		}
	})

	t.Run("get_publication", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/profiles/%d/publications/1", bobID)
		rr := setup.Do(t, "GET", path, "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		var resp PublicationResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Type != "Comment" {
			t.Errorf("Expected type 'Comment', got %q", resp.Type)
		}
		if resp.PointedProfileID != aliceID || resp.PointedPubID != 1 {
			t.Errorf("Unexpected pointer (%d, %d)", resp.PointedProfileID, resp.PointedPubID)
		}
	})

	t.Run("get_missing_publication", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/profiles/1/publications/999", "", nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})
}

// TestInteractionEndpoints tests follow and collect over HTTP
func TestInteractionEndpoints(t *testing.T) {
	setup := NewTestServerSetup(t)
	bobToken := setup.GenerateTestToken(t, testBob, false)

	aliceID := setup.CreateTestProfile(t, testAlice, "alice")
	setup.CreateTestPost(t, testAlice, aliceID, "ipfs://post-1")

	t.Run("follow", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/follow", bobToken, FollowRequest{
			ProfileIDs: []uint64{aliceID},
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		var resp FollowResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(resp.TokenIDs) != 1 || resp.TokenIDs[0] != 1 {
			t.Errorf("Expected token IDs [1], got %v", resp.TokenIDs)
		}
	})

	t.Run("follow_array_mismatch", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/follow", bobToken, FollowRequest{
			ProfileIDs: []uint64{aliceID},
			Datas:      []string{"0x00", "0x00"},
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("follow_missing_profile", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/follow", bobToken, FollowRequest{
			ProfileIDs: []uint64{999},
		})
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})

	t.Run("collect", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/collect", bobToken, CollectRequest{
			ProfileID: aliceID,
			PubID:     1,
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		var resp CollectResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.TokenID != 1 {
			t.Errorf("Expected token ID 1, got %d", resp.TokenID)
		}
	})

	t.Run("collect_missing_publication", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/collect", bobToken, CollectRequest{
			ProfileID: aliceID,
			PubID:     999,
		})
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})
}

// TestPausedStateOverHTTP tests that protocol pauses surface as 423 Locked
func TestPausedStateOverHTTP(t *testing.T) {
	setup := NewTestServerSetup(t)
	aliceToken := setup.GenerateTestToken(t, testAlice, false)
	bobToken := setup.GenerateTestToken(t, testBob, false)

	aliceID := setup.CreateTestProfile(t, testAlice, "alice")
	setup.CreateTestProfile(t, testBob, "bob")

	ctx := context.Background()
	if err := setup.Node.SetState(ctx, testGovernance, hub.PublishingPaused); err != nil {
		t.Fatalf("Failed to pause publishing: %v", err)
	}

	t.Run("publishing_paused_blocks_post", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/publications/post", aliceToken, PostRequest{
			ProfileID:     aliceID,
			ContentURI:    "ipfs://blocked",
			CollectModule: testCollectModule.Hex(),
		})
		if rr.Code != http.StatusLocked {
			t.Errorf("Expected status 423, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("publishing_paused_allows_follow", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/follow", bobToken, FollowRequest{
			ProfileIDs: []uint64{aliceID},
		})
		if rr.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	if err := setup.Node.SetState(ctx, testGovernance, hub.Paused); err != nil {
		t.Fatalf("Failed to pause: %v", err)
	}

	t.Run("paused_blocks_follow", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/follow", aliceToken, FollowRequest{
			ProfileIDs: []uint64{2},
		})
		if rr.Code != http.StatusLocked {
			t.Errorf("Expected status 423, got %d", rr.Code)
		}
	})

	t.Run("paused_allows_views", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/profiles/1", "", nil)
		if rr.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rr.Code)
		}
	})
}

// TestSignatureMaintenanceEndpoints tests the nonce and cancel endpoints
func TestSignatureMaintenanceEndpoints(t *testing.T) {
	setup := NewTestServerSetup(t)
	aliceToken := setup.GenerateTestToken(t, testAlice, false)

	t.Run("get_nonce", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/nonce/"+testAlice.Hex(), "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		var resp NonceResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Nonce != 0 {
			t.Errorf("Expected fresh nonce 0, got %d", resp.Nonce)
		}
	})

	t.Run("get_nonce_invalid_address", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/nonce/garbage", "", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("cancel_signatures", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/signatures/cancel", aliceToken, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		var resp CancelSignaturesResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.NewNonce != 1 {
			t.Errorf("Expected new nonce 1, got %d", resp.NewNonce)
		}

		// The nonce endpoint reflects the bump
		rr = setup.Do(t, "GET", "/api/v1/nonce/"+testAlice.Hex(), "", nil)
		var nonce NonceResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &nonce); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if nonce.Nonce != 1 {
			t.Errorf("Expected nonce 1 after cancel, got %d", nonce.Nonce)
		}
	})

	t.Run("cancel_requires_auth", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/signatures/cancel", "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rr.Code)
		}
	})
}

// TestAdminEndpoints tests the governance surface over HTTP
func TestAdminEndpoints(t *testing.T) {
	setup := NewTestServerSetup(t)
	adminToken := setup.GenerateTestToken(t, testGovernance, true)
	userToken := setup.GenerateTestToken(t, testAlice, false)

	t.Run("requires_admin_token", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/admin/state", userToken, SetStateRequest{State: "paused"})
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403 for non-admin token, got %d", rr.Code)
		}

		rr = setup.Do(t, "POST", "/api/v1/admin/state", "", SetStateRequest{State: "paused"})
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 without token, got %d", rr.Code)
		}
	})

	t.Run("set_state", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/admin/state", adminToken, SetStateRequest{State: "publishing-paused"})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		if setup.Node.GetState() != hub.PublishingPaused {
			t.Errorf("Expected PublishingPaused, got %v", setup.Node.GetState())
		}

		rr = setup.Do(t, "POST", "/api/v1/admin/state", adminToken, SetStateRequest{State: "unpaused"})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
	})

	t.Run("set_state_unknown", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/admin/state", adminToken, SetStateRequest{State: "frozen"})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("whitelist", func(t *testing.T) {
		newcomer := common.HexToAddress("0x0000000000000000000000000000000000000777")
		rr := setup.Do(t, "POST", "/api/v1/admin/whitelist", adminToken, WhitelistRequest{
			Kind:        "profile-creator",
			Address:     newcomer.Hex(),
			Whitelisted: true,
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
		if !setup.Node.IsWhitelisted(hub.ProfileCreatorWhitelist, newcomer) {
			t.Error("Expected newcomer to be whitelisted")
		}
	})

	t.Run("whitelist_unknown_kind", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/admin/whitelist", adminToken, WhitelistRequest{
			Kind:    "vip",
			Address: testAlice.Hex(),
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("set_emergency_admin", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/admin/emergency-admin", adminToken, SetAddressRequest{
			Address: testCarol.Hex(),
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("stats", func(t *testing.T) {
		setup.CreateTestProfile(t, testAlice, "alice")
		rr := setup.Do(t, "GET", "/api/v1/admin/stats", adminToken, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		var resp AdminStatsResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Profiles != 1 {
			t.Errorf("Expected 1 profile, got %d", resp.Profiles)
		}
	})

	t.Run("governance_handover", func(t *testing.T) {
		rr := setup.Do(t, "POST", "/api/v1/admin/governance", adminToken, SetAddressRequest{
			Address: testBob.Hex(),
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}

		// The old governance wallet still carries an admin token, but the
		// node itself now rejects it.
		rr = setup.Do(t, "POST", "/api/v1/admin/state", adminToken, SetStateRequest{State: "paused"})
		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403 after handover, got %d. Body: %s", rr.Code, rr.Body.String())
		}

		// New governance logins now get admin tokens
		rr = setup.Do(t, "POST", "/api/v1/auth/login", "", AuthRequest{Address: testBob.Hex()})
		var resp AuthResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse login response: %v", err)
		}
		if !resp.Admin {
			t.Error("Expected new governance wallet to get an admin token")
		}
	})
}

// TestHealthEndpoint tests GET /api/v1/health
func TestHealthEndpoint(t *testing.T) {
	setup := NewTestServerSetup(t)

	rr := setup.Do(t, "GET", "/api/v1/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse health response: %v", err)
	}
	if !resp.Healthy {
		t.Error("Expected healthy node")
	}
	if resp.State != "Unpaused" {
		t.Errorf("Expected state 'Unpaused', got %q", resp.State)
	}
}
