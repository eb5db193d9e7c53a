// Package config loads cropcast settings from the environment.
//
// Loading order:
//  1. Load a .env file via godotenv (non-fatal if absent).
//  2. Populate Config from CROPCAST_* variables via envconfig.
//  3. Apply command-line overrides.
//  4. Validate with go-playground/validator.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name envconfig reads.
const EnvPrefix = "CROPCAST"

// Config holds all runtime settings.
type Config struct {
	Endpoint  string        `envconfig:"ENDPOINT" default:"http://localhost:5000" validate:"required,url"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s" validate:"gt=0"`
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFile   string        `envconfig:"LOG_FILE"`
	Celebrate bool          `envconfig:"CELEBRATE" default:"true"`
	StubAddr  string        `envconfig:"STUB_ADDR" default:":5000" validate:"required"`
}

// Overrides carries flag values. Zero values leave the environment setting in place.
type Overrides struct {
	Endpoint string
	Timeout  time.Duration
	LogLevel string
	LogFile  string
	StubAddr string
}

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	// ErrParsing indicates an environment value could not be parsed into its field type.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
)

// ConfigError is returned by Load when configuration cannot be used.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads .env, the environment and overrides, and validates the result.
func Load(o Overrides) (*Config, error) {
	// godotenv never overrides variables already present in the process.
	_ = godotenv.Load()
	return load(o)
}

func load(o Overrides) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	cfg.apply(o)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}
	return &cfg, nil
}

func (c *Config) apply(o Overrides) {
	if o.Endpoint != "" {
		c.Endpoint = o.Endpoint
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.StubAddr != "" {
		c.StubAddr = o.StubAddr
	}
}
