// Package session persists the current token and last-known identity across
// process restarts.
//
// # Design
//
// Storage is two logical slots under a configurable key prefix:
//
//	<prefix>:token     — the raw bearer token
//	<prefix>:identity  — the resolved identity, JSON-encoded
//
// SetAll writes both slots through a single MULTI/EXEC transaction so a
// reader never observes one slot updated and the other stale. The store does
// not enforce the token/identity pairing invariant itself; the session
// manager re-validates both together on every rehydration.
//
// # What this package must NOT do
//
//   - Decode or validate tokens.
//   - Decide session lifecycle; it is a dumb durable medium.
//   - Import the root eduauth package (no import cycles).
package session
