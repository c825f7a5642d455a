// Package config provides application configuration: environment variables
// for deployment concerns, an optional YAML tuning file for the behavior
// thresholds.
package config

// #region imports
import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// #endregion

// #region config

// Config holds all deployment configuration.
type Config struct {
	Port        string
	AuditDBPath string

	// RedisAddr switches the student-state store from in-process memory to
	// Redis when non-empty.
	RedisAddr   string
	RedisPrefix string
	RedisTTL    time.Duration

	// VisionURL points at the external frame-to-signals extractor. Empty
	// disables the raw-frame path; clients then send signals directly.
	VisionURL     string
	VisionTimeout time.Duration

	// TuningPath is an optional YAML file overriding behavior thresholds.
	TuningPath string

	LogLevel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AuditDBPath:   getEnv("AUDIT_DB_PATH", "./data/antigravity.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPrefix:   getEnv("REDIS_PREFIX", "student"),
		RedisTTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 0)) * time.Second,
		VisionURL:     getEnv("VISION_URL", ""),
		VisionTimeout: time.Duration(getEnvInt("VISION_TIMEOUT_SECONDS", 5)) * time.Second,
		TuningPath:    getEnv("TUNING_PATH", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.AuditDBPath == "" {
		return fmt.Errorf("AUDIT_DB_PATH cannot be empty")
	}
	if c.VisionTimeout <= 0 {
		return fmt.Errorf("VISION_TIMEOUT_SECONDS must be > 0")
	}
	return nil
}

// #endregion config

// #region env-helpers

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// #endregion env-helpers
