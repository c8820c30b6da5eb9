package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"listen_addr":       "www.example:9000",
		"auth_latency":      "10s",
		"chat_timeout":      int64(5 * time.Second),
		"gemini_api_key":    "abc",
		"video_call_secret": "shh",
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{DatabasePath: "kept.db"}
		require.NoError(t, parseJSON(cfg, []string{"-config", pathFlag}))

		assert.Equal(t, "www.example:9000", cfg.ListenAddr)
		assert.Equal(t, 10*time.Second, cfg.AuthLatency)
		assert.Equal(t, 5*time.Second, cfg.ChatTimeout)
		assert.Equal(t, "abc", cfg.GeminiAPIKey)
		assert.Equal(t, "shh", cfg.VideoCallSecret)
		assert.Equal(t, "kept.db", cfg.DatabasePath, "absent keys keep earlier values")
	})

	t.Run("short flag", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, []string{"-c", pathFlag}))
		assert.Equal(t, "www.example:9000", cfg.ListenAddr)
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{
			ListenAddr:  "defaults:1234",
			AuthLatency: 42 * time.Second,
		}
		require.NoError(t, parseJSON(cfg, []string{"-a", "ignored"}))

		assert.Equal(t, "defaults:1234", cfg.ListenAddr)
		assert.Equal(t, 42*time.Second, cfg.AuthLatency)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJSON(&Config{}, []string{"-config", bad}))
	})

	t.Run("invalid duration → error", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "dur.json", map[string]any{"auth_latency": "soon"})
		assert.Error(t, parseJSON(&Config{}, []string{"-config", bad}))
	})
}
