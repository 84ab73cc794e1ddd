package database

import (
	"os"
	"strconv"
)

// GetTestParams returns connection parameters for integration tests,
// overridable through the TEST_DB_* environment.
func GetTestParams() Params {
	port := 5432
	if v := os.Getenv("TEST_DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}
	return Params{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     port,
		Database: getEnv("TEST_DB_NAME", "loadforge"),
		User:     getEnv("TEST_DB_USER", "loadforge"),
		Password: getEnv("TEST_DB_PASSWORD", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
