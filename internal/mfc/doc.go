// Package mfc models the upstream MyFreeCams feed the logger consumes:
// tracked models with live session snapshots, the typed events the wire
// protocol produces, and a publish-subscribe Feed that transports push
// events into.
//
// The package deliberately contains no network code. A transport (the
// replay reader, a test, or a real protocol client) applies session
// updates and dispatches chat/tip/room events; the Feed maintains the
// model registry, fires per-property change handlers, and tracks
// conditional When subscriptions.
//
// Thread-safety model (single-writer):
//   - Enqueue(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - All other methods (Update, Chat, When, ...) must be called from
//     the same goroutine that runs the dispatch loop, or from a single
//     goroutine when Run is not used at all.
package mfc
