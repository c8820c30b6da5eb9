package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/client"
)

const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"

	// DefaultEnvFile is read when present; a missing file is not an error.
	DefaultEnvFile = ".env"
)

// Config holds runtime settings for the GestureTalk shell.
//
// Durations are time.Duration values; AuthLatency and RecognitionDelay only
// shape the simulated collaborators.
type Config struct {
	ListenAddr    string
	DatabasePath  string
	StorageDriver string
	LogLevel      string

	AuthLatency      time.Duration
	RecognitionDelay time.Duration
	ShutdownTimeout  time.Duration

	// CookieSecret signs the flash cookie. Empty means a random per-process key.
	CookieSecret string

	GeminiEndpoint string
	GeminiModel    string
	GeminiAPIKey   string
	ChatTimeout    time.Duration

	VideoCallBaseURL string
	VideoCallSecret  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = "127.0.0.1:8080"
	c.DatabasePath = "gesturetalk.db"
	c.StorageDriver = StorageSQLite
	c.LogLevel = "info"

	c.AuthLatency = time.Second
	c.RecognitionDelay = 2 * time.Second
	c.ShutdownTimeout = 5 * time.Second

	c.GeminiEndpoint = client.DefaultGeminiEndpoint
	c.GeminiModel = client.DefaultGeminiModel
	c.ChatTimeout = 30 * time.Second

	c.VideoCallBaseURL = "http://127.0.0.1:5000"
}

// Validate rejects settings the shell cannot start with.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is empty")
	}
	switch c.StorageDriver {
	case StorageSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is empty")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	for name, d := range map[string]time.Duration{
		"auth latency":      c.AuthLatency,
		"recognition delay": c.RecognitionDelay,
		"shutdown timeout":  c.ShutdownTimeout,
		"chat timeout":      c.ChatTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, DefaultEnvFile); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
