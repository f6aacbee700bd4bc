// Package feed provides the in-memory implementation of the protocol event
// feed, including live subscriber fanout used by the HTTP streaming
// endpoint.
package feed

import (
	"context"
	"errors"
	"sync"

	feedpkg "github.com/socialhub/socialhub-go/pkg/feed"
)

var (
	// ErrNegativeCount is returned when a negative max count is provided.
	ErrNegativeCount = errors.New("max count cannot be negative")
	// ErrNilEvent is returned when a nil event is appended.
	ErrNilEvent = errors.New("event cannot be nil")
	// ErrClosed is returned when operating on a closed feed.
	ErrClosed = errors.New("feed is closed")
	// ErrDuplicateSubscriber is returned when a subscriber ID is reused.
	ErrDuplicateSubscriber = errors.New("subscriber id already registered")
	// ErrUnknownSubscriber is returned when unsubscribing an unknown ID.
	ErrUnknownSubscriber = errors.New("unknown subscriber id")
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind starts losing events rather than blocking appends.
const subscriberBuffer = 256

// InMemoryFeed implements feedpkg.Feed with in-memory storage and
// best-effort live fanout. It is safe for concurrent use.
type InMemoryFeed struct {
	mu          sync.RWMutex
	events      []*feedpkg.Event
	nextSeq     uint64
	subscribers map[string]chan *feedpkg.Event
	closed      bool
}

// NewInMemoryFeed creates an empty in-memory feed.
func NewInMemoryFeed() *InMemoryFeed {
	return &InMemoryFeed{
		subscribers: make(map[string]chan *feedpkg.Event),
	}
}

// Append appends events in order, assigning sequence numbers, and fans them
// out to live subscribers. Slow subscribers lose events instead of blocking.
func (f *InMemoryFeed) Append(ctx context.Context, events ...*feedpkg.Event) ([]*feedpkg.Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}

	stored := make([]*feedpkg.Event, 0, len(events))
	for _, e := range events {
		if e == nil {
			return nil, ErrNilEvent
		}
		withSeq := e.WithSeq(f.nextSeq)
		f.nextSeq++
		f.events = append(f.events, withSeq)
		stored = append(stored, withSeq)

		for _, ch := range f.subscribers {
			select {
			case ch <- withSeq:
			default:
				// Subscriber buffer full; drop rather than block the hub.
			}
		}
	}
	return stored, nil
}

// ReadFrom reads up to maxCount events starting at startSeq.
func (f *InMemoryFeed) ReadFrom(ctx context.Context, startSeq uint64, maxCount int) ([]*feedpkg.Event, error) {
	if maxCount < 0 {
		return nil, ErrNegativeCount
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	results := make([]*feedpkg.Event, 0, maxCount)
	if maxCount == 0 {
		return results, nil
	}
	for _, e := range f.events {
		if e.Seq >= startSeq {
			results = append(results, e)
			if len(results) >= maxCount {
				break
			}
		}
	}
	return results, nil
}

// EndSeq returns the next sequence number to be assigned.
func (f *InMemoryFeed) EndSeq(ctx context.Context) (uint64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.nextSeq, nil
}

// Replay streams historical events from startSeq via a channel.
func (f *InMemoryFeed) Replay(ctx context.Context, startSeq uint64) (<-chan *feedpkg.Event, <-chan error) {
	eventChan := make(chan *feedpkg.Event)
	errChan := make(chan error, 1)

	go func() {
		defer close(eventChan)
		defer close(errChan)

		f.mu.RLock()
		var toReplay []*feedpkg.Event
		for _, e := range f.events {
			if e.Seq >= startSeq {
				toReplay = append(toReplay, e)
			}
		}
		f.mu.RUnlock()

		for _, e := range toReplay {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			case eventChan <- e:
			}
		}
	}()

	return eventChan, errChan
}

// Subscribe registers a live subscriber and returns its delivery channel.
func (f *InMemoryFeed) Subscribe(ctx context.Context, id string) (<-chan *feedpkg.Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	if _, exists := f.subscribers[id]; exists {
		return nil, ErrDuplicateSubscriber
	}

	ch := make(chan *feedpkg.Event, subscriberBuffer)
	f.subscribers[id] = ch
	return ch, nil
}

// Unsubscribe removes a live subscriber and closes its channel.
func (f *InMemoryFeed) Unsubscribe(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	ch, exists := f.subscribers[id]
	if !exists {
		return ErrUnknownSubscriber
	}
	delete(f.subscribers, id)
	close(ch)
	return nil
}

// Close closes the feed and every live subscriber channel.
func (f *InMemoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil // Already closed, idempotent
	}
	for id, ch := range f.subscribers {
		delete(f.subscribers, id)
		close(ch)
	}
	f.closed = true
	return nil
}

// Verify that InMemoryFeed implements the Feed interface at compile time
var _ feedpkg.Feed = (*InMemoryFeed)(nil)
