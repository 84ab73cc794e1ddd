package config

import (
	"os"
	"strconv"
)

// LoadFromEnv applies LOADFORGE_* environment overrides on top of cfg.
func LoadFromEnv(cfg *Config) {
	if host := os.Getenv("LOADFORGE_DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("LOADFORGE_DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Database.Port = p
		}
	}
	if name := os.Getenv("LOADFORGE_DB_NAME"); name != "" {
		cfg.Database.Name = name
	}
	if user := os.Getenv("LOADFORGE_DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("LOADFORGE_DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if level := os.Getenv("LOADFORGE_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
}
