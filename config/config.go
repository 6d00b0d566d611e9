// Package config provides configuration management for shexec.
package config

import (
	"fmt"

	"github.com/kineticfire-labs/shexec/executor"
	"github.com/kineticfire-labs/shexec/observability"
	"github.com/kineticfire-labs/shexec/validate"
	"github.com/victoralfred/gowritter/safepath"
	"gopkg.in/yaml.v3"
)

// Config is the main configuration for shexec.
type Config struct {
	Executor  ExecutorConfig                `yaml:"executor"`
	Validator ValidatorConfig               `yaml:"validator"`
	Telemetry observability.TelemetryConfig `yaml:"telemetry"`
	Audit     observability.AuditConfig     `yaml:"audit"`
}

// ExecutorConfig configures the executor.
type ExecutorConfig struct {
	// EnvMode is "merge" or "replace" and governs how a command's
	// environment overlay combines with the inherited environment.
	EnvMode string `yaml:"env_mode"`
}

// ValidatorConfig configures script validation.
type ValidatorConfig struct {
	// Tool is the lint tool executable name.
	Tool string `yaml:"tool"`

	// Args are extra arguments passed before the script path.
	Args []string `yaml:"args"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Executor: ExecutorConfig{
			EnvMode: executor.EnvMerge.String(),
		},
		Validator: ValidatorConfig{
			Tool: validate.DefaultTool,
		},
		Telemetry: observability.DefaultTelemetryConfig(),
		Audit:     observability.DefaultAuditConfig(),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Executor.EnvMode {
	case "", executor.EnvMerge.String(), executor.EnvReplace.String():
	default:
		return fmt.Errorf("invalid env_mode %q: must be %q or %q",
			c.Executor.EnvMode, executor.EnvMerge, executor.EnvReplace)
	}
	if c.Validator.Tool == "" {
		return fmt.Errorf("validator tool must not be empty")
	}
	if c.Audit.Enabled && c.Audit.FilePath == "" {
		return fmt.Errorf("audit file_path is required when audit is enabled")
	}
	return nil
}

// EnvModeValue returns the configured env mode as its typed form.
// An empty setting means merge.
func (c *ExecutorConfig) EnvModeValue() executor.EnvMode {
	if c.EnvMode == executor.EnvReplace.String() {
		return executor.EnvReplace
	}
	return executor.EnvMerge
}

// Load reads a YAML configuration file from basePath/file, applies it over
// the defaults and validates the result.
func Load(basePath, file string) (Config, error) {
	cfg := Default()

	sp, err := safepath.New(basePath)
	if err != nil {
		return cfg, fmt.Errorf("creating safe path: %w", err)
	}

	data, err := sp.ReadFile(file)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
