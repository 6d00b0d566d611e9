// Package shexec runs native OS processes and validates shell scripts.
//
// The library has two facilities, composed in one direction:
//
//   - Process execution: build a command from an argument list plus an
//     optional working directory and environment overlay, run it to
//     completion, and consume the outcome either as a typed record
//     (report form) or as trimmed stdout with a typed error on non-zero
//     exit (fail-fast form).
//   - Script validation: shell out to shellcheck on Unix-like hosts and
//     reinterpret its exit code as a pass/fail validity flag.
//
// # Quick Start
//
//	out, err := shexec.Output(ctx, "echo", "hi")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // "hi"
//
// The report form never treats a non-zero exit as an error:
//
//	outcome, err := shexec.Run(ctx, "false")
//	if err != nil {
//	    log.Fatal(err) // only spawn/I-O failures land here
//	}
//	fmt.Println(outcome.ExitCode) // 1
//
// # Script Validation
//
//	report, err := shexec.ValidateScript(ctx, "deploy.sh")
//	if err != nil {
//	    log.Fatal(err) // unsupported OS or shellcheck not installed
//	}
//	if !report.Valid() {
//	    fmt.Println(report.Output())
//	}
//
// # Call Shapes
//
// Run is the primary entry point; Output is a thin fail-fast variant for
// scripting-style callers. Both share one underlying run primitive and
// differ only in how a non-zero exit code surfaces: as data on the Outcome,
// or as an *ExitError carrying the exit code and both captured streams.
//
// # Concurrency
//
// Calls share no state: each run owns its command, spawns one child
// process and observes only its own streams, so concurrent use from
// multiple goroutines needs no synchronization. No timeout is imposed by
// the library; bound the context at the call site if one is needed.
//
// # Architecture
//
// The library is organized into focused packages:
//
//   - shexec (this package): facade and convenience functions
//   - executor: Command, Outcome and the Executor interface
//   - validate: platform dispatch, shellcheck strategy, Report
//   - config: YAML configuration
//   - observability: OpenTelemetry metrics/traces and audit logging
package shexec

import (
	"context"
	"fmt"
	"os"

	"github.com/kineticfire-labs/shexec/executor"
	"github.com/kineticfire-labs/shexec/validate"
)

// Core executor types.
type (
	// Executor is the primary interface for command execution.
	Executor = executor.Executor

	// Command represents a command to be executed.
	Command = executor.Command

	// CommandBuilder creates commands with a fluent interface.
	CommandBuilder = executor.CommandBuilder

	// Outcome contains the outcome of one subprocess run.
	Outcome = executor.Outcome

	// ExitError reports a non-zero exit from the fail-fast call shape.
	ExitError = executor.ExitError

	// EnvMode selects merge or replace semantics for environment overlays.
	EnvMode = executor.EnvMode

	// Builder creates configured Executor instances.
	Builder = executor.Builder
)

// Validation types.
type (
	// Validator validates shell scripts with an external lint tool.
	Validator = validate.Validator

	// Report is the immutable outcome of one script validation.
	Report = validate.Report

	// Platform classifies a host operating system family.
	Platform = validate.Platform
)

// Environment overlay modes.
const (
	EnvMerge   = executor.EnvMerge
	EnvReplace = executor.EnvReplace
)

// Common errors returned by the library.
var (
	// ErrInvalidCommand indicates a malformed command.
	ErrInvalidCommand = executor.ErrInvalidCommand

	// ErrWorkingDir indicates a bad working directory.
	ErrWorkingDir = executor.ErrWorkingDir

	// ErrToolNotFound indicates the lint tool is not installed.
	ErrToolNotFound = validate.ErrToolNotFound

	// ErrNoScript indicates a missing script path or file.
	ErrNoScript = validate.ErrNoScript

	// ErrUnsupportedPlatform indicates the host OS has no validation strategy.
	ErrUnsupportedPlatform = validate.ErrUnsupportedPlatform
)

// New creates a new Executor with default settings.
func New() (Executor, error) {
	return executor.NewBuilder().Build()
}

// NewBuilder creates a new executor builder for configuring the Executor.
func NewBuilder() *Builder {
	return executor.NewBuilder()
}

// Cmd creates a new CommandBuilder with the specified binary and arguments.
// Call Build() on the returned builder to get the final Command.
func Cmd(binary string, args ...string) *CommandBuilder {
	return executor.NewCommand(binary, args...)
}

// FromArgv creates a CommandBuilder from an ordered argument list, binary
// first.
func FromArgv(argv []string) *CommandBuilder {
	return executor.FromArgv(argv)
}

// Run is a convenience function for one-off execution in the report form.
// A non-zero exit code is reported on the Outcome, not as an error.
func Run(ctx context.Context, binary string, args ...string) (*Outcome, error) {
	exec, err := New()
	if err != nil {
		return nil, err
	}
	cmd, err := Cmd(binary, args...).Build()
	if err != nil {
		return nil, err
	}
	return exec.Run(ctx, cmd)
}

// Output is a convenience function for one-off execution in the fail-fast
// form: it returns trimmed stdout and fails with *ExitError on a non-zero
// exit code.
func Output(ctx context.Context, binary string, args ...string) (string, error) {
	exec, err := New()
	if err != nil {
		return "", err
	}
	cmd, err := Cmd(binary, args...).Build()
	if err != nil {
		return "", err
	}
	return exec.Output(ctx, cmd)
}

// RunArgv runs an ordered argument list in the report form and returns the
// legacy four-field string mapping (success, exitValue, out, err).
func RunArgv(ctx context.Context, argv []string) (map[string]string, error) {
	exec, err := New()
	if err != nil {
		return nil, err
	}
	cmd, err := FromArgv(argv).Build()
	if err != nil {
		return nil, err
	}
	outcome, err := exec.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return outcome.Map(), nil
}

// ValidateScript validates the shell script at the given path using the
// default validator.
func ValidateScript(ctx context.Context, path string) (*Report, error) {
	v, err := validate.New()
	if err != nil {
		return nil, err
	}
	return v.Script(ctx, path)
}

// ValidateScriptFile validates an already-open script file by path.
func ValidateScriptFile(ctx context.Context, f *os.File) (*Report, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: script file is nil", validate.ErrNoScript)
	}
	return ValidateScript(ctx, f.Name())
}

// ValidateScriptMap validates the script and returns the four-field string
// mapping (isValid, exitValue, out, err).
func ValidateScriptMap(ctx context.Context, path string) (map[string]string, error) {
	v, err := validate.New()
	if err != nil {
		return nil, err
	}
	return v.ScriptMap(ctx, path)
}

// Version returns the library version.
func Version() string {
	return "1.0.0"
}
