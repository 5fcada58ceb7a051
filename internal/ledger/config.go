package ledger

import (
	"fmt"
	"os"
	"time"
)

// Config holds Apps Script export settings.
type Config struct {
	ScriptURL string `toml:"script_url"`
	Timeout   string `toml:"timeout"`
}

// Env maps config fields to environment variable names.
type Env struct {
	ScriptURL string
	Timeout   string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if env != nil {
		if v := os.Getenv(env.ScriptURL); v != "" {
			c.ScriptURL = v
		}
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ScriptURL != "" {
		c.ScriptURL = overlay.ScriptURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}
