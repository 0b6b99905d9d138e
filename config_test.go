package eduauth

import (
	"testing"
	"time"

	"github.com/profblog/eduauth/token"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "expiry buffer valid",
			mutate: func(c *Config) {
				c.Token.ExpiryBuffer = time.Minute
			},
			wantValid: true,
		},
		{
			name: "expiry buffer zero valid",
			mutate: func(c *Config) {
				c.Token.ExpiryBuffer = 0
			},
			wantValid: true,
		},
		{
			name: "expiry buffer negative invalid",
			mutate: func(c *Config) {
				c.Token.ExpiryBuffer = -time.Second
			},
			wantValid: false,
		},
		{
			name: "redis prefix blank invalid",
			mutate: func(c *Config) {
				c.Session.RedisPrefix = "   "
			},
			wantValid: false,
		},
		{
			name: "redis prefix empty valid",
			mutate: func(c *Config) {
				c.Session.RedisPrefix = ""
			},
			wantValid: true,
		},
		{
			name: "audit buffer negative invalid",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = -1
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Token.ExpiryBuffer != token.DefaultExpiryBuffer {
		t.Fatalf("ExpiryBuffer = %v, want %v", cfg.Token.ExpiryBuffer, token.DefaultExpiryBuffer)
	}
	if cfg.Session.RedisPrefix != "eduauth" {
		t.Fatalf("RedisPrefix = %q", cfg.Session.RedisPrefix)
	}
	if cfg.Audit.Enabled {
		t.Fatal("audit must be off until a sink is attached")
	}
	if cfg.Audit.BufferSize != 256 || !cfg.Audit.DropIfFull {
		t.Fatalf("audit defaults = %+v", cfg.Audit)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("metrics default on")
	}
}

func TestConfigCloneDetachesCaller(t *testing.T) {
	cfg := defaultConfig()
	clone := cloneConfig(cfg)

	cfg.Session.RedisPrefix = "mutated"
	cfg.Token.ExpiryBuffer = time.Hour

	if clone.Session.RedisPrefix != "eduauth" || clone.Token.ExpiryBuffer != token.DefaultExpiryBuffer {
		t.Fatalf("clone shares state with the original: %+v", clone)
	}
}
