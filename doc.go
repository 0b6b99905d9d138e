// Package eduauth owns the client-side session of an education-blog app:
// it holds the authentication token, derives a trusted identity and role
// from it, persists both across process restarts, and publishes the
// authorization facts (IsAuthenticated, IsProfessor, ProfessorID) that every
// screen and action depends on.
//
// The package is the public surface. It exposes [Manager], [Builder],
// [Config], the audit and metrics subsystems, and value types. Token
// structure lives in the token package, identity resolution in identity,
// ownership gating in authz, durable storage in session, and the HTTP
// boundary in transport and api.
//
// # Architecture boundaries
//
// Manager is the only component with externally visible state. Transitions
// (rehydration, login, logout, forced invalidation) are serialized through a
// single in-flight operation guard; published facts always read the
// last-settled state and never suspend.
//
// # What this package must NOT do
//
//   - Verify token signatures or enforce access control. The decoded role
//     and ownership facts gate UI only; the server re-checks every request.
//   - Issue tokens or hash passwords; both are owned by the remote server.
//   - Expose Redis clients or storage encodings in its public API.
package eduauth
