package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	feedpkg "github.com/socialhub/socialhub-go/pkg/feed"
)

const (
	// defaultReadLimit bounds replay pages when the client gives no limit.
	defaultReadLimit = 100
	// maxReadLimit bounds replay pages regardless of the client's limit.
	maxReadLimit = 1000
	// keepaliveInterval is the SSE ping cadence.
	keepaliveInterval = 30 * time.Second
)

// ReadEvents handles GET /api/v1/events?from={seq}&limit={n}: a page of
// historical protocol events.
func (h *Handlers) ReadEvents(w http.ResponseWriter, r *http.Request) {
	from := uint64(0)
	if s := r.URL.Query().Get("from"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			h.writeError(w, "Invalid from parameter", http.StatusBadRequest)
			return
		}
		from = v
	}

	limit := defaultReadLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			h.writeError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}
	if limit > maxReadLimit {
		limit = maxReadLimit
	}

	events, err := h.node.Feed().ReadFrom(r.Context(), from, limit)
	if err != nil {
		h.writeError(w, fmt.Sprintf("Failed to read events: %v", err), http.StatusInternalServerError)
		return
	}

	messages := make([]EventStreamMessage, 0, len(events))
	for _, ev := range events {
		messages = append(messages, streamMessage(ev))
	}

	h.writeJSON(w, ReadEventsResponse{
		Events:   messages,
		StartSeq: from,
		Count:    len(messages),
	}, http.StatusOK)
}

// StreamEvents handles GET /api/v1/events/stream: a live SSE stream of
// protocol events, optionally filtered by event name.
func (h *Handlers) StreamEvents(w http.ResponseWriter, r *http.Request) {
	nameFilter := r.URL.Query().Get("name")

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	subscriberID := uuid.New().String()
	events, err := h.node.Feed().Subscribe(r.Context(), subscriberID)
	if err != nil {
		fmt.Fprintf(w, ": failed to subscribe: %v\n\n", err)
		return
	}
	defer func() {
		// Request context is cancelled by the time we clean up.
		_ = h.node.Feed().Unsubscribe(context.Background(), subscriberID)
	}()

	fmt.Fprintf(w, ": connected subscriber=%s\n\n", subscriberID)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case ev, open := <-events:
			if !open {
				return
			}
			if nameFilter != "" && ev.Name != nameFilter {
				continue
			}
			if err := h.writeSSEMessage(w, streamMessage(ev)); err != nil {
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

// streamMessage converts a feed event to its wire form.
func streamMessage(ev *feedpkg.Event) EventStreamMessage {
	return EventStreamMessage{
		Seq:       ev.Seq,
		Name:      ev.Name,
		Payload:   ev.Payload,
		Timestamp: ev.Timestamp,
	}
}

// writeSSEMessage writes an EventStreamMessage as a properly formatted SSE
// data message.
func (h *Handlers) writeSSEMessage(w http.ResponseWriter, message EventStreamMessage) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal SSE message: %w", err)
	}

	// Write in SSE format: "data: {json}\n\n"
	_, err = fmt.Fprintf(w, "data: %s\n\n", jsonData)
	return err
}
