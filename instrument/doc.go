// Package instrument attaches observability to a [wikistore.Store] through
// its notification channels.
//
//   - [LogEvents]: structured slog lines for every write and read
//   - [Metrics]: Prometheus counters and a record gauge
//
// Both return a detach handle that removes their subscriptions. Observers
// only read from the store, never write to it.
package instrument
