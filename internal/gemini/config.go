package gemini

import (
	"fmt"
	"os"
	"time"
)

// Config holds Gemini API settings.
type Config struct {
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	MinDelay string `toml:"min_delay"`
}

// Env maps config fields to environment variable names.
type Env struct {
	APIKey   string
	Model    string
	MinDelay string
}

// MinDelayDuration returns the minimum inter-call delay.
func (c *Config) MinDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.MinDelay)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.Model == "" {
		c.Model = "gemini-2.0-flash"
	}
	if c.MinDelay == "" {
		c.MinDelay = "4s"
	}
	if env != nil {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
		if v := os.Getenv(env.MinDelay); v != "" {
			c.MinDelay = v
		}
	}
	if _, err := time.ParseDuration(c.MinDelay); err != nil {
		return fmt.Errorf("invalid min_delay: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.MinDelay != "" {
		c.MinDelay = overlay.MinDelay
	}
}
