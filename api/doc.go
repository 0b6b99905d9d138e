// Package api is the typed client for the blog server's REST surface.
//
// # Design
//
// Client methods mirror the server's endpoints one-to-one and decode its
// envelope convention: list responses arrive under a plural key, single
// records under a singular key, deletions as a message. Some deployments
// answer with bare payloads instead of envelopes, so every decode falls
// back to the raw body shape.
//
// Client.SignIn satisfies the session manager's sign-in collaborator
// interface; authenticated calls go through the transport package, which
// injects the bearer header and reports 401 rejections back to the session.
//
// # What this package must NOT do
//
//   - Persist tokens or manage session state.
//   - Retry requests or impose timeouts beyond the injected http.Client's.
package api
