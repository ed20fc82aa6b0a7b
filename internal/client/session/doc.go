// Package session owns the single in-memory authentication state of the
// frontend and the startup procedure that restores it.
//
// # State machine
//
//	Uninitialized -> Restoring -> {Authenticated, Anonymous}
//	Authenticated -> Anonymous   (logout, or authorization failure
//	                              reported by any downstream caller)
//
// Initialize runs once per process start: it reads the persisted credential
// and user record from the local store, commits the resulting state, and
// only then triggers the settings fetch. Consumers observe the state via
// Snapshot; nothing outside this package mutates it.
//
// The Manager never throws at its consumers: every failure resolves to a
// state transition or a logged no-op, and callers inspect the state after
// an awaited call to detect failure.
package session
