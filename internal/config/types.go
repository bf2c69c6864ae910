package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete socmirror configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Sync   SyncConfig   `yaml:"sync"`
	Status StatusConfig `yaml:"status"`
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig locates the monitoring backend
type ServerConfig struct {
	BaseURL        string   `yaml:"base_url"`
	WSPath         string   `yaml:"ws_path"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

// SyncConfig tunes the synchronization engine
type SyncConfig struct {
	ReconnectDelay  Duration `yaml:"reconnect_delay"`
	RefreshInterval Duration `yaml:"refresh_interval"`
	ToastTTL        Duration `yaml:"toast_ttl"`
}

// StatusConfig configures the local status HTTP endpoint
type StatusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
}

// LoggerConfig configures log output and optional file rotation
type LoggerConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// Duration is a time.Duration that YAML decodes from strings like
// "1200ms" as well as plain nanosecond integers.
type Duration time.Duration

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
