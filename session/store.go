package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/profblog/eduauth/identity"
)

// ErrRedisUnavailable is returned when the underlying medium rejects a read
// or write.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrCorruptIdentity is returned when the persisted identity blob is not
// valid JSON. Callers treat it as an absent identity and re-derive.
var ErrCorruptIdentity = errors.New("persisted identity corrupt")

const defaultPrefix = "eduauth"

// Store defines a public type used by eduauth APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	client      *redis.Client
	tokenKey    string
	identityKey string
}

// NewStore creates a Store on the given Redis client. An empty prefix
// selects "eduauth".
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{
		client:      client,
		tokenKey:    prefix + ":token",
		identityKey: prefix + ":identity",
	}
}

// SetAll describes the setall operation and its observable behavior.
//
// Both slots are written in one MULTI/EXEC transaction; the store is never
// left holding one updated slot and one stale slot.
func (s *Store) SetAll(ctx context.Context, token string, ident identity.Identity) error {
	blob, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey, token, 0)
		pipe.Set(ctx, s.identityKey, blob, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Token returns the persisted token, or "" when the slot is empty.
func (s *Store) Token(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, nil
}

// Identity returns the persisted identity, or nil when the slot is empty.
func (s *Store) Identity(ctx context.Context) (*identity.Identity, error) {
	blob, err := s.client.Get(ctx, s.identityKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var ident identity.Identity
	if err := json.Unmarshal(blob, &ident); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIdentity, err)
	}
	return &ident, nil
}

// ClearAll removes both slots. Removing already-absent slots is not an error.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey, s.identityKey).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
