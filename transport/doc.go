// Package transport wires the session manager into an HTTP client.
//
// # Design
//
// AuthTransport is an [net/http.RoundTripper] decorator. On every request it
// asks the session for the current bearer token and injects an
// Authorization header; on a 401 response it tells the session to
// invalidate itself. It never retries, never decodes tokens, and never
// blocks on session transitions: the token read is the last-settled value
// and the invalidation is queued by the manager if a transition is in
// flight.
//
// # What this package must NOT do
//
//   - Decide session lifecycle beyond signaling an authentication
//     rejection.
//   - Mutate the caller's request; the outgoing request is cloned before
//     the header is set.
//   - Inspect or buffer response bodies.
package transport
