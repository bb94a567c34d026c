package log

import (
	"os"
	"strconv"
	"strings"
)

// Config controls the process-wide logger.
type Config struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`

	// Format: console, json
	Format string `yaml:"format"`

	// AddSource adds file:line to every record.
	AddSource bool `yaml:"add_source"`
}

// NewConfigFromEnv builds a Config from LOG_LEVEL, LOG_FORMAT and
// LOG_ADD_SOURCE. ENV=development forces debug output with source.
func NewConfigFromEnv() Config {
	cfg := Config{
		Level:     getEnvWithDefault("LOG_LEVEL", "info"),
		Format:    getEnvWithDefault("LOG_FORMAT", "console"),
		AddSource: getEnvBool("LOG_ADD_SOURCE", false),
	}
	if strings.EqualFold(os.Getenv("ENV"), "development") {
		cfg.Level = "debug"
		cfg.AddSource = true
	}
	return cfg
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
