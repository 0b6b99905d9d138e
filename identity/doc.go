// Package identity builds the canonical user record consumed by every screen
// and action of the blog client.
//
// # Design
//
// The backend is inconsistent about field naming (sub vs id vs userId,
// professorId vs professor_id) and about types (numbers arrive as numbers
// from one endpoint and numeric strings from another). Instead of ad hoc
// fallback chains at call sites, resolution consults an explicit ordered
// alias list per field, documented on each function.
//
// Both resolvers are total: missing data degrades to defaults rather than
// erroring, because identity resolution must not block a session the server
// has already authenticated.
//
// # What this package must NOT do
//
//   - Fail. There is no error return anywhere in this package.
//   - Perform I/O or read ambient state.
//   - Mutate a resolved Identity; the session manager owns replacement.
package identity
