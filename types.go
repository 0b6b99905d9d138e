package eduauth

import (
	"context"

	"github.com/profblog/eduauth/identity"
	"github.com/profblog/eduauth/token"
)

// State represents the lifecycle state of the client session.
type State uint8

const (
	// StateUnknown is an exported constant or variable used by the session manager.
	StateUnknown State = iota
	// StateAnonymous is an exported constant or variable used by the session manager.
	StateAnonymous
	// StateAuthenticated is an exported constant or variable used by the session manager.
	StateAuthenticated
)

// String describes the string operation and its observable behavior.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is the canonical user record published by [Manager].
//
// See [identity.Identity].
type Identity = identity.Identity

// UserPayload is the server's loosely typed user object.
//
// See [identity.UserPayload].
type UserPayload = identity.UserPayload

// Claims is the decoded, unverified token payload.
//
// See [token.Claims].
type Claims = token.Claims

// Session is the live pairing of a token and an identity. Token and Identity
// are always replaced together or cleared together; there is no state where
// one is present without the other.
type Session struct {
	Token    string
	Identity Identity
}

// SignInResult is the sign-in collaborator's response: a token, and
// optionally the server's explicit user object.
type SignInResult struct {
	Token string       `json:"token"`
	User  *UserPayload `json:"user,omitempty"`
}

// SignInProvider is the external collaborator that exchanges credentials for
// a token. Network and credential failures surface as transport errors.
type SignInProvider interface {
	SignIn(ctx context.Context, email, senha string) (*SignInResult, error)
}

// Store is the durable medium for the current session. Implementations must
// keep SetAll atomic when the medium supports batched writes; the [Manager]
// re-validates token and identity together at read time either way.
type Store interface {
	SetAll(ctx context.Context, token string, ident Identity) error
	Token(ctx context.Context) (string, error)
	Identity(ctx context.Context) (*Identity, error)
	ClearAll(ctx context.Context) error
}
