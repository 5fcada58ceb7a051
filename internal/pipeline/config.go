package pipeline

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds pipeline behavior settings.
type Config struct {
	Aggregation  string `toml:"aggregation"`
	PreviewLimit int    `toml:"preview_limit"`
}

// Env maps config fields to environment variable names.
type Env struct {
	Aggregation  string
	PreviewLimit string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.Aggregation == "" {
		c.Aggregation = PolicyCombined
	}
	if c.PreviewLimit == 0 {
		c.PreviewLimit = 4000
	}
	if env != nil {
		if v := os.Getenv(env.Aggregation); v != "" {
			c.Aggregation = v
		}
		if v := os.Getenv(env.PreviewLimit); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.PreviewLimit = n
			}
		}
	}
	if c.Aggregation != PolicyCombined && c.Aggregation != PolicyPerFile {
		return fmt.Errorf("invalid aggregation policy: %q", c.Aggregation)
	}
	if c.PreviewLimit < 0 {
		return fmt.Errorf("preview_limit cannot be negative")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Aggregation != "" {
		c.Aggregation = overlay.Aggregation
	}
	if overlay.PreviewLimit != 0 {
		c.PreviewLimit = overlay.PreviewLimit
	}
}
