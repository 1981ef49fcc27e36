// Package config loads the service configuration from YAML, filling in
// defaults for anything the file leaves out.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v2"

	"github.com/storepulse/storepulse/internal/infrastructure/cache"
	"github.com/storepulse/storepulse/internal/infrastructure/db"
	"github.com/storepulse/storepulse/internal/insights"
)

// ServerConfig holds the HTTP listener configuration. Durations parse
// from Go duration strings in YAML ("10s").
type ServerConfig struct {
	Host         string         `yaml:"host"`
	Port         int            `yaml:"port"`
	ReadTimeout  model.Duration `yaml:"read_timeout"`
	WriteTimeout model.Duration `yaml:"write_timeout"`
	IdleTimeout  model.Duration `yaml:"idle_timeout"`
	RatePerSec   float64        `yaml:"rate_per_sec"`
	RateBurst    int            `yaml:"rate_burst"`
}

// SetListen overrides host and port from a host:port address.
func (s *ServerConfig) SetListen(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid listen port %q: %w", portStr, err)
	}
	if host != "" {
		s.Host = host
	}
	s.Port = port
	return nil
}

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig     `yaml:"server"`
	Database db.Config        `yaml:"database"`
	Redis    cache.Config     `yaml:"redis"`
	Engine   *insights.Config `yaml:"engine"`
}

// Default returns the full default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  model.Duration(10 * time.Second),
			WriteTimeout: model.Duration(30 * time.Second),
			IdleTimeout:  model.Duration(60 * time.Second),
			RatePerSec:   20,
			RateBurst:    40,
		},
		Database: db.DefaultConfig(),
		Redis:    cache.DefaultConfig(),
		Engine:   insights.DefaultConfig(),
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}
