package eduauth

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/profblog/eduauth/session"
	"github.com/profblog/eduauth/token"
)

// Builder defines a public type used by eduauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client
	store  Store

	signIn    SignInProvider
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithStore installs a custom durable store, replacing the Redis-backed
// default. Intended for dependency injection in tests and for hosts with
// their own storage medium.
func (b *Builder) WithStore(store Store) *Builder {
	b.store = store
	return b
}

// WithSignIn describes the withsignin operation and its observable behavior.
func (b *Builder) WithSignIn(provider SignInProvider) *Builder {
	b.signIn = provider
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	if sink != nil {
		b.config.Audit.Enabled = true
	}
	return b
}

// WithExpiryBuffer describes the withexpirybuffer operation and its observable behavior.
func (b *Builder) WithExpiryBuffer(buffer time.Duration) *Builder {
	b.config.Token.ExpiryBuffer = buffer
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.signIn == nil {
		return nil, errors.New("sign-in provider required")
	}

	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, errors.New("redis client required")
		}
		store = session.NewStore(b.redis, cfg.Session.RedisPrefix)
	}

	codec, err := token.NewCodec(token.Config{
		ExpiryBuffer: cfg.Token.ExpiryBuffer,
		Now:          cfg.Token.Clock,
	})
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		config:  cfg,
		codec:   codec,
		store:   store,
		signIn:  b.signIn,
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
		state:   StateUnknown,
	}

	b.built = true

	return manager, nil
}
