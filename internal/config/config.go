// Package config provides solver configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// ALMANAC_* environment variables (optionally loaded from a .env file).
// Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-ricrob/almanac/internal/almanac"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of all environment variables.
const EnvPrefix = "ALMANAC"

// Default configuration values.
const (
	DefaultWorkers   = 0 // 0 selects one worker per CPU
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatConsole
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// ErrInvalid is returned for configuration values out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the solver configuration.
type Config struct {
	// Workers is the number of goroutines evaluating seeds.
	// Env: ALMANAC_WORKERS
	Workers int `yaml:"workers" envconfig:"WORKERS"`

	// MaxRefinePasses caps the refinement fixpoint loop.
	// Env: ALMANAC_MAX_REFINE_PASSES
	MaxRefinePasses int `yaml:"max_refine_passes" envconfig:"MAX_REFINE_PASSES"`

	// LogLevel is one of debug, info, warn, error.
	// Env: ALMANAC_LOG_LEVEL
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// LogFormat is console or json.
	// Env: ALMANAC_LOG_FORMAT
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers:         DefaultWorkers,
		MaxRefinePasses: almanac.DefaultMaxRefinePasses,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}
}

// Load builds the configuration from defaults, the YAML file at yamlPath and
// the environment. An empty yamlPath skips the file. envFile names a .env
// file to load first; a missing .env file is not an error.
func Load(yamlPath, envFile string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		if err := cfg.mergeYAML(yamlPath); err != nil {
			return Config{}, err
		}
	}
	if err := LoadDotEnv(envFile); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads ".env" from the current directory.
// Variables already set in the environment are kept.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if c.MaxRefinePasses < 1 {
		return fmt.Errorf("%w: max refine passes %d", ErrInvalid, c.MaxRefinePasses)
	}
	switch strings.ToLower(c.LogFormat) {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}
