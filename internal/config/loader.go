package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied after load when a field is unset. The reconnect delay,
// refresh interval and toast lifetime mirror the server-side dashboard
// these values were tuned against.
const (
	DefaultWSPath          = "/ws/monitor/"
	DefaultRequestTimeout  = Duration(10 * time.Second)
	DefaultReconnectDelay  = Duration(1200 * time.Millisecond)
	DefaultRefreshInterval = Duration(5 * time.Second)
	DefaultToastTTL        = Duration(3500 * time.Millisecond)
	DefaultStatusPort      = "8099"
)

// LoadConfig loads configuration from a single YAML file
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadYAML(path, cfg); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadYAML loads a YAML file into a struct
func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// applyDefaults fills in unset fields
func applyDefaults(cfg *Config) {
	if cfg.Server.WSPath == "" {
		cfg.Server.WSPath = DefaultWSPath
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Sync.ReconnectDelay == 0 {
		cfg.Sync.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.Sync.RefreshInterval == 0 {
		cfg.Sync.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Sync.ToastTTL == 0 {
		cfg.Sync.ToastTTL = DefaultToastTTL
	}
	if cfg.Status.Port == "" {
		cfg.Status.Port = DefaultStatusPort
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
}

// ValidateConfig validates the configuration
func ValidateConfig(cfg *Config) error {
	if cfg.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	u, err := url.Parse(cfg.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if !strings.HasPrefix(cfg.Server.WSPath, "/") {
		return fmt.Errorf("server.ws_path must start with /")
	}
	if cfg.Sync.ReconnectDelay < 0 || cfg.Sync.RefreshInterval < 0 || cfg.Sync.ToastTTL < 0 {
		return fmt.Errorf("sync intervals must not be negative")
	}
	if cfg.Logger.File == "" && (cfg.Logger.MaxSizeMB != 0 || cfg.Logger.MaxBackups != 0) {
		return fmt.Errorf("logger rotation settings require logger.file")
	}
	return nil
}

// WSURL derives the push-channel endpoint from the base URL, matching
// the page transport: https becomes wss, http becomes ws.
func (c *Config) WSURL() string {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = c.Server.WSPath
	u.RawQuery = ""
	return u.String()
}
