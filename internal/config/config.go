// Package config loads a ServiceConfig from YAML, grounded on
// skypro1111-tlv-audio-service/internal/config.Config's
// read-unmarshal-validate pattern.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kpavlenko/lumabeam"
)

// MetricsConfig controls the optional Prometheus exporter.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ServiceConfig wraps a lumabeam.ProtocolConfig with the service-level
// settings a host application needs that aren't part of the wire format
// itself.
type ServiceConfig struct {
	Protocol lumabeam.ProtocolConfig `yaml:"protocol"`
	Metrics  MetricsConfig           `yaml:"metrics"`
}

// Default returns a ServiceConfig built from lumabeam.DefaultProtocolConfig
// with metrics disabled.
func Default() ServiceConfig {
	return ServiceConfig{
		Protocol: lumabeam.DefaultProtocolConfig(),
		Metrics:  MetricsConfig{Enabled: false, Addr: ":9090"},
	}
}

// Load reads and parses the YAML configuration file at path, validating
// the embedded ProtocolConfig before returning it.
func Load(path string) (ServiceConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ServiceConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return ServiceConfig{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks every sub-section of cfg.
func (c ServiceConfig) Validate() error {
	if err := c.Protocol.Validate(); err != nil {
		return fmt.Errorf("protocol config: %w", err)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics config: addr cannot be empty when enabled")
	}
	return nil
}
