// Package token decodes the compact three-segment bearer tokens issued by
// the blog server and answers expiry questions about their claims.
//
// # Design
//
// Decoding is deliberately unverified: the server validates signatures on
// every request, and the client only reads the payload to drive UI gating.
// Only the middle segment is decoded; header and signature are treated as
// opaque bytes. The payload is restored to padded base64url before decoding
// because some issuers strip padding.
//
// # Architecture boundaries
//
// This package owns token structure and expiry math. Identity resolution
// from decoded claims lives in the identity package; session lifecycle lives
// in the root package.
//
// # What this package must NOT do
//
//   - Verify signatures or trust any claim for access control.
//   - Perform I/O. Decode and Expired are pure given the injected clock.
//   - Import the root eduauth package or any sibling package.
package token
