// Package store persists the notifier daemon's state.
//
// State lives in a BoltDB file next to the config. It holds the id of the
// last status seen per account and feed, so polls only report what is new,
// plus a few counters describing the current daemon instance.
//
// The file is owned by the daemon. The CLI never opens it; deleting the
// notifier removes it with [Reset] so the next start takes a new baseline.
package store
