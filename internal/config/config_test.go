package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "socmirror.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: "https://soc.example.org"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/ws/monitor/", cfg.Server.WSPath)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout.Std())
	assert.Equal(t, 1200*time.Millisecond, cfg.Sync.ReconnectDelay.Std())
	assert.Equal(t, 5*time.Second, cfg.Sync.RefreshInterval.Std())
	assert.Equal(t, 3500*time.Millisecond, cfg.Sync.ToastTTL.Std())
	assert.Equal(t, "8099", cfg.Status.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadConfig_ExplicitValuesSurviveDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: "http://10.0.4.12:8000"
  ws_path: "/ws/feed/"
  request_timeout: 3s
sync:
  reconnect_delay: 500ms
  refresh_interval: 30s
  toast_ttl: 2s
status:
  enabled: true
  port: "9100"
logger:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/ws/feed/", cfg.Server.WSPath)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.ReconnectDelay.Std())
	assert.Equal(t, 30*time.Second, cfg.Sync.RefreshInterval.Std())
	assert.Equal(t, 2*time.Second, cfg.Sync.ToastTTL.Std())
	assert.True(t, cfg.Status.Enabled)
	assert.Equal(t, "9100", cfg.Status.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateConfig_Rejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing base url",
			yaml: `
sync:
  reconnect_delay: 1s
`,
		},
		{
			name: "unsupported scheme",
			yaml: `
server:
  base_url: "ftp://soc.example.org"
`,
		},
		{
			name: "ws path without leading slash",
			yaml: `
server:
  base_url: "https://soc.example.org"
  ws_path: "ws/monitor/"
`,
		},
		{
			name: "negative interval",
			yaml: `
server:
  base_url: "https://soc.example.org"
sync:
  reconnect_delay: -1s
`,
		},
		{
			name: "rotation without log file",
			yaml: `
server:
  base_url: "https://soc.example.org"
logger:
  max_backups: 3
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDuration_YAMLForms(t *testing.T) {
	var out struct {
		D Duration `yaml:"d"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("d: 1500ms"), &out))
	assert.Equal(t, 1500*time.Millisecond, out.D.Std())

	require.NoError(t, yaml.Unmarshal([]byte("d: 2000000000"), &out))
	assert.Equal(t, 2*time.Second, out.D.Std())

	assert.Error(t, yaml.Unmarshal([]byte("d: fast"), &out))
}

func TestWSURL_SchemeMapping(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://soc.example.org", "wss://soc.example.org/ws/monitor/"},
		{"http://10.0.4.12:8000", "ws://10.0.4.12:8000/ws/monitor/"},
		{"https://soc.example.org/app?tab=1", "wss://soc.example.org/ws/monitor/"},
	}

	for _, tt := range tests {
		cfg := &Config{}
		cfg.Server.BaseURL = tt.base
		cfg.Server.WSPath = DefaultWSPath
		assert.Equal(t, tt.want, cfg.WSURL())
	}
}
