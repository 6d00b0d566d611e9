package executor

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kineticfire-labs/shexec/internal/envutil"
	internalexec "github.com/kineticfire-labs/shexec/internal/exec"
)

// Executor is the single abstraction for process invocation.
//
// Run is the primary call shape: it reports the outcome of a completed run
// and reserves its error return for failures that prevented or interrupted
// the run itself (malformed command, spawn failure, stream I/O failure).
// A non-zero exit code is informative data on the Outcome, not an error.
//
// Output is the fail-fast variant layered on Run for scripting-style
// callers: it returns trimmed stdout and converts a non-zero exit code into
// an *ExitError carrying the exit code and both captured streams.
type Executor interface {
	// Run executes a command to completion and reports its outcome.
	Run(ctx context.Context, cmd *Command) (*Outcome, error)

	// Output executes a command and returns its trimmed standard output,
	// failing with *ExitError when the exit code is non-zero.
	Output(ctx context.Context, cmd *Command) (string, error)
}

// Runner executes a prepared command against the operating system.
// The production implementation lives in internal/exec; tests substitute
// their own.
type Runner interface {
	Run(ctx context.Context, config *internalexec.RunConfig) (*internalexec.RunResult, error)
}

// Hook defines extension points around command execution.
type Hook interface {
	// PreExecute is called before command execution and may replace the
	// command.
	PreExecute(ctx context.Context, cmd *Command) (*Command, error)

	// PostExecute is called after command execution.
	PostExecute(ctx context.Context, cmd *Command, outcome *Outcome, err error) error
}

// Telemetry provides observability for executions.
type Telemetry interface {
	// StartSpan starts a new trace span.
	StartSpan(ctx context.Context, name string) (context.Context, func())

	// RecordMetric records a metric.
	RecordMetric(name string, value float64, labels map[string]string)
}

// executor is the default implementation.
type executor struct {
	runner    Runner
	hooks     []Hook
	telemetry Telemetry
}

// Builder creates configured Executor instances.
type Builder struct {
	runner    Runner
	hooks     []Hook
	telemetry Telemetry
}

// NewBuilder creates a new executor builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithRunner sets the runner. Intended for tests; the default runner
// executes real OS processes.
func (b *Builder) WithRunner(runner Runner) *Builder {
	b.runner = runner
	return b
}

// WithHooks adds execution hooks.
func (b *Builder) WithHooks(hooks ...Hook) *Builder {
	b.hooks = append(b.hooks, hooks...)
	return b
}

// WithTelemetry sets the telemetry provider.
func (b *Builder) WithTelemetry(telemetry Telemetry) *Builder {
	b.telemetry = telemetry
	return b
}

// Build creates the executor.
func (b *Builder) Build() (Executor, error) {
	runner := b.runner
	if runner == nil {
		runner = internalexec.NewRunner()
	}
	return &executor{
		runner:    runner,
		hooks:     b.hooks,
		telemetry: b.telemetry,
	}, nil
}

// Run executes a command synchronously and reports its outcome.
// The caller's context is passed through unchanged; no timeout is imposed.
func (e *executor) Run(ctx context.Context, cmd *Command) (*Outcome, error) {
	if cmd == nil {
		return nil, ErrInvalidCommand
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	if e.telemetry != nil {
		var endSpan func()
		ctx, endSpan = e.telemetry.StartSpan(ctx, "executor.Run")
		defer endSpan()
	}

	commandID := uuid.New().String()

	cmd, err := e.runPreHooks(ctx, cmd)
	if err != nil {
		return nil, err
	}

	config := &internalexec.RunConfig{
		Binary:     cmd.Binary,
		Args:       cmd.Args,
		Env:        buildEnv(cmd),
		WorkingDir: cmd.WorkingDir,
	}

	runResult, runErr := e.runner.Run(ctx, config)
	if runErr != nil {
		// Spawn or I/O failure from the platform, propagated as-is.
		if hookErr := e.runPostHooks(ctx, cmd, nil, runErr); hookErr != nil {
			return nil, hookErr
		}
		return nil, runErr
	}

	outcome := &Outcome{
		CommandID: commandID,
		ExitCode:  runResult.ExitCode,
		Stdout:    strings.TrimSpace(string(runResult.Stdout)),
		Stderr:    strings.TrimSpace(string(runResult.Stderr)),
		Duration:  runResult.Duration,
	}

	if e.telemetry != nil {
		e.telemetry.RecordMetric("executor.execution_duration_ms",
			float64(outcome.Duration.Milliseconds()), map[string]string{
				"binary":   cmd.Binary,
				"exitcode": strconv.Itoa(outcome.ExitCode),
			})
	}

	if hookErr := e.runPostHooks(ctx, cmd, outcome, nil); hookErr != nil {
		return outcome, hookErr
	}

	return outcome, nil
}

// Output executes a command and returns its trimmed standard output.
// A non-zero exit code fails with *ExitError.
func (e *executor) Output(ctx context.Context, cmd *Command) (string, error) {
	outcome, err := e.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if !outcome.Success() {
		return "", NewExitError(cmd.Binary, outcome)
	}
	return outcome.Stdout, nil
}

// buildEnv resolves the child environment from the command's overlay and
// env mode. A nil return means the child inherits the parent environment
// untouched.
func buildEnv(cmd *Command) []string {
	switch cmd.EnvMode {
	case EnvReplace:
		return envutil.Build(cmd.Env)
	default:
		if len(cmd.Env) == 0 {
			return nil
		}
		merged := envutil.Merge(envutil.Inherited(), cmd.Env)
		return envutil.Build(merged)
	}
}

// runPreHooks runs pre-execute hooks in registration order.
func (e *executor) runPreHooks(ctx context.Context, cmd *Command) (*Command, error) {
	current := cmd
	for _, hook := range e.hooks {
		modified, err := hook.PreExecute(ctx, current)
		if err != nil {
			return nil, err
		}
		current = modified
	}
	return current, nil
}

// runPostHooks runs post-execute hooks in registration order.
func (e *executor) runPostHooks(ctx context.Context, cmd *Command, outcome *Outcome, execErr error) error {
	for _, hook := range e.hooks {
		if err := hook.PostExecute(ctx, cmd, outcome, execErr); err != nil {
			return err
		}
	}
	return nil
}
