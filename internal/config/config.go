package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"orderdesk/internal/models"
	"orderdesk/internal/notify"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Notifications struct {
		AutoDismiss time.Duration `yaml:"auto_dismiss"`
	} `yaml:"notifications"`
	CurrencySymbol string           `yaml:"currency_symbol"`
	Catalog        []models.Product `yaml:"catalog"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.LogLevel = "info"
	cfg.MetricsConfig.Enabled = true
	cfg.MetricsConfig.Path = "/metrics"
	cfg.Notifications.AutoDismiss = notify.DefaultAutoDismiss
	cfg.CurrencySymbol = "$"
	return cfg
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail later at startup
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.MetricsConfig.Enabled && (c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535) {
		return fmt.Errorf("server.metrics_port out of range: %d", c.Server.MetricsPort)
	}
	if c.Notifications.AutoDismiss <= 0 {
		return fmt.Errorf("notifications.auto_dismiss must be positive, got %s", c.Notifications.AutoDismiss)
	}
	return nil
}

// BuildCatalog returns the configured catalog, or the built-in one when the
// file lists no products
func (c *Config) BuildCatalog() (*models.Catalog, error) {
	products := c.Catalog
	if len(products) == 0 {
		products = models.DefaultCatalog()
	}
	return models.NewCatalog(products)
}
