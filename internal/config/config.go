// Package config loads CLI defaults from the environment and an optional
// .env file. Command-line flags override everything loaded here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all tabcodec CLI configuration.
type Config struct {
	Logging LoggingConfig
	Decode  DecodeConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"TABCODEC_LOG_LEVEL" default:"warn"`

	// Format is the log output format: text or json (default: text)
	Format string `env:"TABCODEC_LOG_FORMAT" default:"text"`
}

// DecodeConfig holds decoder tunables.
type DecodeConfig struct {
	// MergeRowLimit skips merged-cell flattening on sheets with at least
	// this many rows; negative never skips (default: 10000)
	MergeRowLimit int `env:"TABCODEC_MERGE_ROW_LIMIT" default:"10000"`

	// MaxCells rejects sheets whose rectangular grid would hold more
	// cells; negative disables the check (default: 10000000)
	MaxCells int `env:"TABCODEC_MAX_CELLS" default:"10000000"`
}

// LoadDotEnv reads variables from the given files into the process
// environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("TABCODEC_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("TABCODEC_LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
