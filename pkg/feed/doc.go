// Package feed provides the append-only protocol event feed.
//
// Every successful mutating hub operation publishes one or more canonical
// events (see pkg/hub) to the feed. Off-chain indexers consume the feed in
// two ways: offset-addressed replay of historical events, and live
// subscription fanout for streaming. Sequence numbers are assigned by the
// feed, are strictly increasing from 0, and never reused.
//
// The interfaces follow the repo's conventions: context.Context for
// cancellation, channels for async streaming, io.Closer for cleanup, and
// explicit error returns.
package feed
