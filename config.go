package eduauth

import (
	"errors"
	"strings"
	"time"

	"github.com/profblog/eduauth/token"
)

// Config defines a public type used by eduauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token   TokenConfig
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by eduauth APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// ExpiryBuffer treats tokens this close to expiry as already expired.
	// Zero selects token.DefaultExpiryBuffer (300s).
	ExpiryBuffer time.Duration
	// Clock overrides the expiry clock. nil selects time.Now.
	Clock func() time.Time
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by eduauth APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string
}

// AuditConfig defines a public type used by eduauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by eduauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			ExpiryBuffer: token.DefaultExpiryBuffer,
		},
		Session: SessionConfig{
			RedisPrefix: "eduauth",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Value copy is a deep copy: no slices or maps in any section.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation fails.
func (c Config) Validate() error {
	if c.Token.ExpiryBuffer < 0 {
		return errors.New("Token.ExpiryBuffer must not be negative")
	}
	if strings.TrimSpace(c.Session.RedisPrefix) == "" && c.Session.RedisPrefix != "" {
		return errors.New("Session.RedisPrefix must not be blank")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}
	return nil
}
