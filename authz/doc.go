// Package authz answers the role and ownership questions screens ask before
// showing edit/delete affordances or the admin tab.
//
// Every function here is pure and stateless: the answers are UI gating only,
// never access-control enforcement — the server re-checks authorization on
// every request.
//
// # What this package must NOT do
//
//   - Hold or cache state.
//   - Import the root eduauth package (it depends only on the Identity shape).
//   - Be treated as a security boundary.
package authz
