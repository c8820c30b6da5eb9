package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{name: "Test1 OK", args: []string{"-a", "127.0.0.1:9090", "-d", "/tmp/gt.db", "-l", "250", "-v", "debug"},
			expected: &Config{ListenAddr: "127.0.0.1:9090", DatabasePath: "/tmp/gt.db", AuthLatency: 250 * time.Millisecond, LogLevel: "debug"}},
		{name: "Test2 foreign flags ignored", args: []string{"-c", "cfg.json", "-a", ":80"},
			expected: &Config{ListenAddr: ":80"}},
		{name: "Test3 incorrect latency", args: []string{"-l", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

func TestParseFlags_KeepsEarlierValues(t *testing.T) {
	config := &Config{ListenAddr: "keep:1", AuthLatency: 3 * time.Second}

	require.NoError(t, parseFlags(config, nil))
	assert.Equal(t, "keep:1", config.ListenAddr)
	assert.Equal(t, 3*time.Second, config.AuthLatency)
}
