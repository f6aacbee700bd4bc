package feed

import (
	"context"
	"io"
)

// Feed defines the append-only protocol event feed.
type Feed interface {
	io.Closer

	// Append appends events to the feed in order, assigning sequence
	// numbers, and fans them out to live subscribers. The returned events
	// carry their assigned sequence numbers.
	Append(ctx context.Context, events ...*Event) ([]*Event, error)

	// ReadFrom reads up to maxCount events starting at startSeq.
	ReadFrom(ctx context.Context, startSeq uint64, maxCount int) ([]*Event, error)

	// EndSeq returns the next sequence number to be assigned.
	EndSeq(ctx context.Context) (uint64, error)

	// Replay streams historical events from startSeq via a channel. The
	// channel is closed when all events are sent or the context is
	// cancelled.
	Replay(ctx context.Context, startSeq uint64) (<-chan *Event, <-chan error)

	// Subscribe registers a live subscriber identified by id and returns its
	// delivery channel. Events appended after subscription are delivered in
	// order; slow subscribers may have events dropped rather than block the
	// hub. Unsubscribe releases the subscription and closes the channel.
	Subscribe(ctx context.Context, id string) (<-chan *Event, error)

	// Unsubscribe removes a live subscriber.
	Unsubscribe(ctx context.Context, id string) error
}
