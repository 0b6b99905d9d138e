package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed is returned when a token does not split into three non-empty
// segments or when its payload segment is not a base64url-encoded JSON object.
var ErrMalformed = errors.New("malformed token")

// ErrExpired is returned when a decodable token is past its expiry buffer.
var ErrExpired = errors.New("token expired")

// DefaultExpiryBuffer treats tokens this close to expiry as already expired,
// so a request started just before server-side expiry cannot complete after it.
const DefaultExpiryBuffer = 5 * time.Minute

// Claims defines a public type used by eduauth APIs.
//
// Claims is the decoded, unverified token payload, returned verbatim by
// [Codec.Decode]: unknown fields are preserved, no schema is enforced.
type Claims map[string]any

// ExpiresAt returns the exp claim as epoch seconds. The second return value
// is false when exp is absent or not numeric.
func (c Claims) ExpiresAt() (int64, bool) {
	raw, ok := c["exp"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Config defines a public type used by eduauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// ExpiryBuffer widens the expiry check; zero selects DefaultExpiryBuffer.
	ExpiryBuffer time.Duration
	// Now overrides the clock. nil selects time.Now.
	Now func() time.Time
}

// Codec defines a public type used by eduauth APIs.
//
// Codec instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Codec struct {
	buffer time.Duration
	now    func() time.Time
}

// NewCodec describes the newcodec operation and its observable behavior.
//
// NewCodec may return an error when input validation fails.
// NewCodec does not mutate shared global state and the returned Codec can be used concurrently.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.ExpiryBuffer < 0 {
		return nil, errors.New("invalid expiry buffer configuration")
	}
	if cfg.ExpiryBuffer == 0 {
		cfg.ExpiryBuffer = DefaultExpiryBuffer
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Codec{buffer: cfg.ExpiryBuffer, now: cfg.Now}, nil
}

// Decode describes the decode operation and its observable behavior.
//
// Decode fails with [ErrMalformed] for any input that is not three non-empty
// dot-separated segments with a base64url JSON object in the middle. It is
// pure: no I/O, deterministic output for a given input string.
func (c *Codec) Decode(raw string) (Claims, error) {
	return Decode(raw)
}

// Expired reports whether claims are past the codec's expiry buffer.
// Absence of exp counts as expired: the client never trusts an unbounded token.
func (c *Codec) Expired(claims Claims) bool {
	return Expired(claims, c.buffer, c.now())
}

// Decode is the package-level form of [Codec.Decode].
func Decode(raw string) (Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected three segments, got %d", ErrMalformed, len(parts))
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment", ErrMalformed)
		}
	}

	payload := parts[1]
	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}

	decoded, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not base64url", ErrMalformed)
	}

	var claims Claims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformed)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformed)
	}

	return claims, nil
}

// Expired is the package-level form of [Codec.Expired] with an explicit
// buffer and clock.
func Expired(claims Claims, buffer time.Duration, now time.Time) bool {
	exp, ok := claims.ExpiresAt()
	if !ok {
		return true
	}
	return exp-int64(buffer/time.Second) < now.Unix()
}
