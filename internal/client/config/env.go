package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. GESTURETALK_LISTEN_ADDR.
const EnvPrefix = "GESTURETALK"

// EnvConfig mirrors Config for envconfig decoding. It is prefilled from the
// current Config so unset variables keep earlier values.
type EnvConfig struct {
	ListenAddr       string        `envconfig:"LISTEN_ADDR"`
	DatabasePath     string        `envconfig:"DATABASE_PATH"`
	StorageDriver    string        `envconfig:"STORAGE_DRIVER"`
	LogLevel         string        `envconfig:"LOG_LEVEL"`
	AuthLatency      time.Duration `envconfig:"AUTH_LATENCY"`
	RecognitionDelay time.Duration `envconfig:"RECOGNITION_DELAY"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
	CookieSecret     string        `envconfig:"COOKIE_SECRET"`
	GeminiEndpoint   string        `envconfig:"GEMINI_ENDPOINT"`
	GeminiModel      string        `envconfig:"GEMINI_MODEL"`
	GeminiAPIKey     string        `envconfig:"GEMINI_API_KEY"`
	ChatTimeout      time.Duration `envconfig:"CHAT_TIMEOUT"`
	VideoCallBaseURL string        `envconfig:"VIDEO_CALL_BASE_URL"`
	VideoCallSecret  string        `envconfig:"VIDEO_CALL_SECRET"`
}

// parseEnv loads envFile into the process environment (existing variables
// win) and overlays cfg with the GESTURETALK_* variables.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	ec := EnvConfig{
		ListenAddr:       cfg.ListenAddr,
		DatabasePath:     cfg.DatabasePath,
		StorageDriver:    cfg.StorageDriver,
		LogLevel:         cfg.LogLevel,
		AuthLatency:      cfg.AuthLatency,
		RecognitionDelay: cfg.RecognitionDelay,
		ShutdownTimeout:  cfg.ShutdownTimeout,
		CookieSecret:     cfg.CookieSecret,
		GeminiEndpoint:   cfg.GeminiEndpoint,
		GeminiModel:      cfg.GeminiModel,
		GeminiAPIKey:     cfg.GeminiAPIKey,
		ChatTimeout:      cfg.ChatTimeout,
		VideoCallBaseURL: cfg.VideoCallBaseURL,
		VideoCallSecret:  cfg.VideoCallSecret,
	}
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		return err
	}

	cfg.ListenAddr = ec.ListenAddr
	cfg.DatabasePath = ec.DatabasePath
	cfg.StorageDriver = ec.StorageDriver
	cfg.LogLevel = ec.LogLevel
	cfg.AuthLatency = ec.AuthLatency
	cfg.RecognitionDelay = ec.RecognitionDelay
	cfg.ShutdownTimeout = ec.ShutdownTimeout
	cfg.CookieSecret = ec.CookieSecret
	cfg.GeminiEndpoint = ec.GeminiEndpoint
	cfg.GeminiModel = ec.GeminiModel
	cfg.GeminiAPIKey = ec.GeminiAPIKey
	cfg.ChatTimeout = ec.ChatTimeout
	cfg.VideoCallBaseURL = ec.VideoCallBaseURL
	cfg.VideoCallSecret = ec.VideoCallSecret
	return nil
}
