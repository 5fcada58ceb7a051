// Package config loads the root service configuration: a base
// config.toml, an optional per-environment overlay selected by
// DOSSIER_ENV, and environment variable overrides applied during
// finalization.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/facultymetrics/dossier/internal/classifier"
	"github.com/facultymetrics/dossier/internal/drive"
	"github.com/facultymetrics/dossier/internal/gemini"
	"github.com/facultymetrics/dossier/internal/ledger"
	"github.com/facultymetrics/dossier/internal/pipeline"
	"github.com/facultymetrics/dossier/pkg/database"
	"github.com/facultymetrics/dossier/pkg/pagination"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvDossierEnv             = "DOSSIER_ENV"
	EnvDossierShutdownTimeout = "DOSSIER_SHUTDOWN_TIMEOUT"
	EnvDossierVersion         = "DOSSIER_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "DOSSIER_DB_HOST",
	Port:            "DOSSIER_DB_PORT",
	Name:            "DOSSIER_DB_NAME",
	User:            "DOSSIER_DB_USER",
	Password:        "DOSSIER_DB_PASSWORD",
	SSLMode:         "DOSSIER_DB_SSL_MODE",
	MaxOpenConns:    "DOSSIER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "DOSSIER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DOSSIER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "DOSSIER_DB_CONN_TIMEOUT",
}

var classifierEnv = &classifier.Env{
	Endpoint: "DOSSIER_CLASSIFIER_ENDPOINT",
	Timeout:  "DOSSIER_CLASSIFIER_TIMEOUT",
}

var geminiEnv = &gemini.Env{
	APIKey:   "DOSSIER_GEMINI_API_KEY",
	Model:    "DOSSIER_GEMINI_MODEL",
	MinDelay: "DOSSIER_GEMINI_MIN_DELAY",
}

var driveEnv = &drive.Env{
	APIKey:      "DOSSIER_DRIVE_API_KEY",
	OCREndpoint: "DOSSIER_OCR_ENDPOINT",
	OCRTimeout:  "DOSSIER_OCR_TIMEOUT",
}

var ledgerEnv = &ledger.Env{
	ScriptURL: "DOSSIER_LEDGER_SCRIPT_URL",
	Timeout:   "DOSSIER_LEDGER_TIMEOUT",
}

var pipelineEnv = &pipeline.Env{
	Aggregation:  "DOSSIER_PIPELINE_AGGREGATION",
	PreviewLimit: "DOSSIER_PIPELINE_PREVIEW_LIMIT",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "DOSSIER_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "DOSSIER_PAGINATION_MAX_PAGE_SIZE",
}

// Config is the root configuration for the dossier service.
type Config struct {
	Database        database.Config   `toml:"database"`
	Classifier      classifier.Config `toml:"classifier"`
	Gemini          gemini.Config     `toml:"gemini"`
	Drive           drive.Config      `toml:"drive"`
	Ledger          ledger.Config     `toml:"ledger"`
	Pipeline        pipeline.Config   `toml:"pipeline"`
	Pagination      pagination.Config `toml:"pagination"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the DOSSIER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvDossierEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment
// overlay, and finalizes all values. If no config.toml exists, defaults
// and environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Classifier.Merge(&overlay.Classifier)
	c.Gemini.Merge(&overlay.Gemini)
	c.Drive.Merge(&overlay.Drive)
	c.Ledger.Merge(&overlay.Ledger)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Classifier.Finalize(classifierEnv); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Gemini.Finalize(geminiEnv); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	if err := c.Drive.Finalize(driveEnv); err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	if err := c.Ledger.Finalize(ledgerEnv); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if err := c.Pipeline.Finalize(pipelineEnv); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvDossierShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvDossierVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvDossierEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
