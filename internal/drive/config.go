package drive

import (
	"fmt"
	"os"
	"time"
)

// Config holds Google Drive and OCR service settings.
type Config struct {
	APIKey      string `toml:"api_key"`
	OCREndpoint string `toml:"ocr_endpoint"`
	OCRTimeout  string `toml:"ocr_timeout"`
}

// Env maps config fields to environment variable names.
type Env struct {
	APIKey      string
	OCREndpoint string
	OCRTimeout  string
}

// OCRTimeoutDuration returns OCRTimeout as a time.Duration.
func (c *Config) OCRTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.OCRTimeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.OCRTimeout == "" {
		c.OCRTimeout = "120s"
	}
	if env != nil {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
		if v := os.Getenv(env.OCREndpoint); v != "" {
			c.OCREndpoint = v
		}
		if v := os.Getenv(env.OCRTimeout); v != "" {
			c.OCRTimeout = v
		}
	}
	if _, err := time.ParseDuration(c.OCRTimeout); err != nil {
		return fmt.Errorf("invalid ocr_timeout: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.OCREndpoint != "" {
		c.OCREndpoint = overlay.OCREndpoint
	}
	if overlay.OCRTimeout != "" {
		c.OCRTimeout = overlay.OCRTimeout
	}
}
