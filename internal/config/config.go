// Package config holds the rest-mapper CLI settings: a YAML file, overridden
// by RESTMAP_* environment variables, overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Output formats for written documents and reports.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Environment variables read by Load.
const (
	EnvLogLevel = "RESTMAP_LOG_LEVEL"
	EnvOutput   = "RESTMAP_OUTPUT"
)

var validate = validator.New()

// Config is the CLI configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// Output selects the serialization of written files and reports.
	Output string `yaml:"output" validate:"oneof=yaml json"`
	// Strict makes check fail on warnings as well as on issues.
	Strict bool `yaml:"strict"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		LogLevel: "info",
		Output:   OutputYAML,
	}
}

// Load reads the configuration file at path and applies environment
// overrides. An empty path loads the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the field values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s must be one of [%s], got %q", yamlName(fe.Field()), fe.Param(), fe.Value()))
	}

	return errors.New(strings.Join(parts, "; "))
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
}

func yamlName(field string) string {
	switch field {
	case "LogLevel":
		return "log_level"
	case "Output":
		return "output"
	default:
		return field
	}
}
