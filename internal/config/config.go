// Package config reads the server settings. Model provider settings live
// in the llm package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds HTTP server and runtime settings.
type Config struct {
	HTTPAddr       string
	BodyLimitMB    int
	CORSOrigins    []string
	RequestTimeout time.Duration

	// DBPath is the event log location. Empty selects the default path.
	DBPath string

	LogLevel  string
	LogFormat string

	// Debug includes the grader's debug block in grading responses.
	Debug bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		BodyLimitMB:    20,
		CORSOrigins:    []string{"*"},
		RequestTimeout: 120 * time.Second,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// LoadDotEnv loads variables from the given files, or ./.env when none are
// given. Variables already set in the environment win. A missing file is
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv builds a Config from ERDGRADE_* variables on top of the defaults.
// Unparseable values are reported, not ignored.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("ERDGRADE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ERDGRADE_BODY_LIMIT_MB"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return cfg, fmt.Errorf("ERDGRADE_BODY_LIMIT_MB: %w", err)
		}
		cfg.BodyLimitMB = n
	}
	if v := os.Getenv("ERDGRADE_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("ERDGRADE_REQUEST_TIMEOUT"); v != "" {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return cfg, fmt.Errorf("ERDGRADE_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	cfg.DBPath = os.Getenv("ERDGRADE_DB")
	if v := os.Getenv("ERDGRADE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("ERDGRADE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("ERDGRADE_DEBUG"); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return cfg, fmt.Errorf("ERDGRADE_DEBUG: %w", err)
		}
		cfg.Debug = b
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is required")
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("body limit must be positive, got %d MB", c.BodyLimitMB)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// BodyLimitBytes returns the request body limit in bytes.
func (c Config) BodyLimitBytes() int64 {
	return int64(c.BodyLimitMB) << 20
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
