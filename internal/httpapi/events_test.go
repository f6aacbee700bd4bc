package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/socialhub/socialhub-go/pkg/hub"
)

// TestReadEvents tests GET /api/v1/events replay paging
func TestReadEvents(t *testing.T) {
	setup := NewTestServerSetup(t)

	// The setup's whitelist and state changes already sit in the feed; anchor
	// on the position before the profile events.
	start, err := setup.Node.Feed().EndSeq(context.Background())
	if err != nil {
		t.Fatalf("EndSeq failed: %v", err)
	}

	aliceID := setup.CreateTestProfile(t, testAlice, "alice")
	setup.CreateTestPost(t, testAlice, aliceID, "ipfs://post-1")

	t.Run("read_from_beginning", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/events", "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
		}

		var resp ReadEventsResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Count < 2 {
			t.Fatalf("Expected at least 2 events, got %d", resp.Count)
		}
		if resp.Events[0].Seq != 0 {
			t.Errorf("Expected first seq 0, got %d", resp.Events[0].Seq)
		}

		names := make(map[string]bool)
		for _, ev := range resp.Events {
			names[ev.Name] = true
		}
		if !names[hub.EventProfileCreated] {
			t.Error("Expected a ProfileCreated event in the replay")
		}
		if !names[hub.EventPostCreated] {
			t.Error("Expected a PostCreated event in the replay")
		}
	})

	t.Run("read_with_offset_and_limit", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/events?from=%d&limit=1", start)
		rr := setup.Do(t, "GET", path, "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}

		var resp ReadEventsResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Count != 1 {
			t.Fatalf("Expected 1 event, got %d", resp.Count)
		}
		if resp.Events[0].Seq != start {
			t.Errorf("Expected seq %d, got %d", start, resp.Events[0].Seq)
		}
		if resp.Events[0].Name != hub.EventProfileCreated {
			t.Errorf("Expected event %q, got %q", hub.EventProfileCreated, resp.Events[0].Name)
		}
		if resp.StartSeq != start {
			t.Errorf("Expected start seq %d, got %d", start, resp.StartSeq)
		}
	})

	t.Run("read_past_end", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/events?from=10000", "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		var resp ReadEventsResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Count != 0 {
			t.Errorf("Expected 0 events past the end, got %d", resp.Count)
		}
	})

	t.Run("invalid_from", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/events?from=abc", "", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("invalid_limit", func(t *testing.T) {
		rr := setup.Do(t, "GET", "/api/v1/events?limit=-1", "", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})
}

// TestStreamEvents tests the GET /api/v1/events/stream SSE endpoint
func TestStreamEvents(t *testing.T) {
	setup := NewTestServerSetup(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest("GET", "/api/v1/events/stream", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		setup.Server.handlers.StreamEvents(rr, req)
		close(done)
	}()

	// Let the subscriber register, then produce a live event.
	time.Sleep(100 * time.Millisecond)
	setup.CreateTestProfile(t, testAlice, "alice")
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stream handler did not return after context cancellation")
	}

	// Verify SSE response headers
	if contentType := rr.Header().Get("Content-Type"); contentType != "text/event-stream" {
		t.Errorf("Expected Content-Type 'text/event-stream', got %q", contentType)
	}
	if cacheControl := rr.Header().Get("Cache-Control"); cacheControl != "no-cache" {
		t.Errorf("Expected Cache-Control 'no-cache', got %q", cacheControl)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	body := rr.Body.String()
	if !strings.Contains(body, ": connected") {
		t.Error("Expected connection comment in stream")
	}
	if !strings.Contains(body, "data: ") {
		t.Fatalf("Expected at least one data frame, got: %s", body)
	}
	if !strings.Contains(body, hub.EventProfileCreated) {
		t.Errorf("Expected a ProfileCreated frame, got: %s", body)
	}
}

// TestStreamEventsNameFilter tests the name query parameter on the SSE stream
func TestStreamEventsNameFilter(t *testing.T) {
	setup := NewTestServerSetup(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest("GET", "/api/v1/events/stream?name="+hub.EventPostCreated, nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		setup.Server.handlers.StreamEvents(rr, req)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	aliceID := setup.CreateTestProfile(t, testAlice, "alice")
	setup.CreateTestPost(t, testAlice, aliceID, "ipfs://post-1")
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stream handler did not return after context cancellation")
	}

	body := rr.Body.String()
	if !strings.Contains(body, hub.EventPostCreated) {
		t.Errorf("Expected a PostCreated frame, got: %s", body)
	}
	if strings.Contains(body, `"name":"`+hub.EventProfileCreated+`"`) {
		t.Errorf("Expected ProfileCreated frames to be filtered out, got: %s", body)
	}
}
