package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kineticfire-labs/shexec/validate"
)

func newValidateCommand(cfgPath *string) *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "validate script...",
		Short: "Validate shell scripts with shellcheck",
		Long: "Run the configured lint tool against each script and report " +
			"whether it passed. Exits non-zero if any script has issues.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if tool == "" {
				tool = cfg.Validator.Tool
			}

			exec, err := newExecutor(cfg)
			if err != nil {
				return err
			}

			v, err := validate.New(
				validate.WithExecutor(exec),
				validate.WithTool(tool, cfg.Validator.Args...),
			)
			if err != nil {
				return err
			}

			pass := color.New(color.FgGreen).SprintFunc()
			fail := color.New(color.FgRed).SprintFunc()

			invalid := 0
			for _, script := range args {
				report, err := v.Script(cmd.Context(), script)
				if err != nil {
					return err
				}
				if report.Valid() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", pass("ok"), script)
					continue
				}
				invalid++
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (exit code %d)\n",
					fail("issues"), script, report.ExitCode())
				if report.Output() != "" {
					fmt.Fprintln(cmd.OutOrStdout(), report.Output())
				}
				if report.ErrOutput() != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), report.ErrOutput())
				}
			}

			if invalid > 0 {
				return &exitCodeError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "", "lint tool to use (default from config, shellcheck)")
	return cmd
}
