// Package config loads harness configuration from YAML and environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FairForge/loadforge/internal/conn"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Security conn.Security  `yaml:"security"`
	Run      RunConfig      `yaml:"run"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RunConfig struct {
	Profile         string  `yaml:"profile"`           // "low", "high", or "custom"
	Connections     int     `yaml:"connections"`       // custom profile only
	OpsPerSecond    int     `yaml:"ops_per_second"`    // custom profile only
	DataSizeBytes   int     `yaml:"data_size_bytes"`   // custom profile only
	ThinkTimeMillis int     `yaml:"think_time_millis"` // custom profile only
	DurationSeconds int     `yaml:"duration_seconds"`  // custom profile only
	ReadRatio       float64 `yaml:"read_ratio"`
	IncludeHighLoad bool    `yaml:"include_high_load"`
	BulkRows        int     `yaml:"bulk_rows"`
	BulkBatchSize   int     `yaml:"bulk_batch_size"`
	QueryIterations int     `yaml:"query_iterations"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			Name: "loadforge",
			User: "loadforge",
		},
		Security: conn.Security{Mode: conn.SecurityNone},
		Run: RunConfig{
			Profile:   "low",
			ReadRatio: 0.5,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - operator-supplied path
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	LoadFromEnv(cfg)

	if err := cfg.Security.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
