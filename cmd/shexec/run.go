package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kineticfire-labs/shexec"
	"github.com/kineticfire-labs/shexec/executor"
)

func newRunCommand(cfgPath *string) *cobra.Command {
	var (
		dir        string
		envPairs   []string
		replaceEnv bool
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command and report its outcome",
		Long: "Run a command to completion, print its captured output and exit " +
			"with the command's own exit code.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			builder := shexec.FromArgv(args).
				WithWorkingDir(dir).
				WithEnvMode(cfg.Executor.EnvModeValue())
			if replaceEnv {
				builder = builder.WithEnvMode(executor.EnvReplace)
			}
			for _, pair := range envPairs {
				key, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("invalid --env value %q: want KEY=VALUE", pair)
				}
				builder = builder.WithEnv(key, value)
			}

			command, err := builder.Build()
			if err != nil {
				return err
			}

			exec, err := newExecutor(cfg)
			if err != nil {
				return err
			}

			outcome, err := exec.Run(cmd.Context(), command)
			if err != nil {
				return err
			}

			if !quiet {
				if outcome.Stdout != "" {
					fmt.Fprintln(cmd.OutOrStdout(), outcome.Stdout)
				}
				if outcome.Stderr != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), outcome.Stderr)
				}
			}

			if !outcome.Success() {
				return &exitCodeError{code: outcome.ExitCode}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "working directory for the command")
	cmd.Flags().StringArrayVar(&envPairs, "env", nil, "environment overlay entry KEY=VALUE (repeatable)")
	cmd.Flags().BoolVar(&replaceEnv, "replace-env", false, "use the overlay as the entire child environment")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress captured output")
	return cmd
}

// exitCodeError carries a child exit code to main without printing an
// error message of its own.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// exitCode extracts a process exit code from an error chain, if present.
func exitCode(err error) (int, bool) {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece.code, true
	}
	var ee *shexec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode, true
	}
	return 0, false
}
