// Package main is the entry point for the shexec CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kineticfire-labs/shexec"
	"github.com/kineticfire-labs/shexec/config"
	"github.com/kineticfire-labs/shexec/observability"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// A child exit code passes through as our own exit code.
		if code, ok := exitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "shexec",
		Short:         "Run commands and validate shell scripts",
		Version:       shexec.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")

	root.AddCommand(newRunCommand(&cfgPath))
	root.AddCommand(newValidateCommand(&cfgPath))
	return root
}

// loadConfig resolves the effective configuration. An empty path means
// defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(filepath.Dir(path), filepath.Base(path))
}

// newExecutor builds the executor the configuration describes: telemetry
// when tracing or metrics are enabled, an audit hook when auditing is
// enabled.
func newExecutor(cfg config.Config) (shexec.Executor, error) {
	builder := shexec.NewBuilder()

	if cfg.Telemetry.EnableTracing || cfg.Telemetry.EnableMetrics {
		tel, err := observability.NewTelemetry(cfg.Telemetry)
		if err != nil {
			return nil, fmt.Errorf("initializing telemetry: %w", err)
		}
		builder = builder.WithTelemetry(tel)
	}

	if cfg.Audit.Enabled {
		logger, err := observability.NewFileAuditLogger(cfg.Audit)
		if err != nil {
			return nil, fmt.Errorf("initializing audit log: %w", err)
		}
		builder = builder.WithHooks(observability.NewAuditHook(logger))
	}

	return builder.Build()
}
