package token

import (
	"errors"
	"fmt"
	"time"
)

// Config configures the token codec. The secret is loaded once at startup
// and never rotated within a process lifetime.
type Config struct {
	// Secret is the HMAC signing key (required).
	Secret string `mapstructure:"secret"`

	// Issuer is the "iss" claim (optional).
	Issuer string `mapstructure:"issuer"`

	// AccessTokenTTL is the lifetime of access tokens (default: 15m).
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens (default: 7d).
	// Must be strictly longer than AccessTokenTTL.
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = 7 * 24 * time.Hour
	}
}

// Validate checks required fields and TTL ordering.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt: secret is required")
	}
	if len(c.Secret) < 32 {
		return fmt.Errorf("jwt: secret must be at least 32 bytes (got: %d)", len(c.Secret))
	}
	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		return fmt.Errorf("jwt: refresh_token_ttl (%s) must be longer than access_token_ttl (%s)",
			c.RefreshTokenTTL, c.AccessTokenTTL)
	}
	return nil
}
