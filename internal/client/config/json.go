package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/flagx"
	"github.com/dmitrijs2005/gesturetalk/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell absent keys from zero values; durations go through
// timex.Duration so they may be strings like "3s" or integer nanoseconds.
type JSONConfig struct {
	ListenAddr       *string         `json:"listen_addr"`
	DatabasePath     *string         `json:"database_path"`
	StorageDriver    *string         `json:"storage_driver"`
	LogLevel         *string         `json:"log_level"`
	AuthLatency      *timex.Duration `json:"auth_latency"`
	RecognitionDelay *timex.Duration `json:"recognition_delay"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	CookieSecret     *string         `json:"cookie_secret"`
	GeminiEndpoint   *string         `json:"gemini_endpoint"`
	GeminiModel      *string         `json:"gemini_model"`
	GeminiAPIKey     *string         `json:"gemini_api_key"`
	ChatTimeout      *timex.Duration `json:"chat_timeout"`
	VideoCallBaseURL *string         `json:"video_call_base_url"`
	VideoCallSecret  *string         `json:"video_call_secret"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}

// parseJSON overlays cfg with the file named by -c or -config in args.
// Without either flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.ListenAddr, jc.ListenAddr)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.AuthLatency, jc.AuthLatency)
	setDuration(&cfg.RecognitionDelay, jc.RecognitionDelay)
	setDuration(&cfg.ShutdownTimeout, jc.ShutdownTimeout)
	setString(&cfg.CookieSecret, jc.CookieSecret)
	setString(&cfg.GeminiEndpoint, jc.GeminiEndpoint)
	setString(&cfg.GeminiModel, jc.GeminiModel)
	setString(&cfg.GeminiAPIKey, jc.GeminiAPIKey)
	setDuration(&cfg.ChatTimeout, jc.ChatTimeout)
	setString(&cfg.VideoCallBaseURL, jc.VideoCallBaseURL)
	setString(&cfg.VideoCallSecret, jc.VideoCallSecret)
	return nil
}
