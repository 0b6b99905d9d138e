package transport

import "net/http"

// TokenSource supplies the current bearer token. The second return value is
// false when no session is live.
type TokenSource interface {
	Token() (string, bool)
}

// SessionInvalidator receives the forced-invalidation signal when the server
// rejects a request's authentication.
type SessionInvalidator interface {
	Invalidate()
}

// AuthTransport defines a public type used by eduauth APIs.
//
// AuthTransport instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuthTransport struct {
	// Base performs the actual request. nil selects
	// http.DefaultTransport.
	Base http.RoundTripper

	// Tokens supplies the bearer token. nil disables header injection.
	Tokens TokenSource

	// Session receives the invalidation signal on 401 responses. nil
	// disables the signal.
	Session SessionInvalidator
}

// RoundTrip describes the roundtrip operation and its observable behavior.
//
// RoundTrip may return an error when the underlying transport fails. A 401
// response is not an error here: it is returned to the caller unchanged
// after the invalidation signal fires.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.Tokens != nil {
		if tok, ok := t.Tokens.Token(); ok {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.Session != nil {
		t.Session.Invalidate()
	}

	return resp, nil
}

// NewClient wraps the given session in a ready-to-use [net/http.Client].
// The session argument usually is an [github.com/profblog/eduauth.Manager],
// which satisfies both interfaces.
func NewClient(tokens TokenSource, session SessionInvalidator) *http.Client {
	return &http.Client{
		Transport: &AuthTransport{
			Tokens:  tokens,
			Session: session,
		},
	}
}
