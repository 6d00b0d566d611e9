// Package exec provides the internal command execution wrapper.
// This is the ONLY package in the entire library that imports os/exec.
// All command execution MUST go through this package.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// Runner executes commands using os/exec.CommandContext.
// This is the sole abstraction for process invocation.
type Runner struct{}

// NewRunner creates a new command runner.
func NewRunner() *Runner {
	return &Runner{}
}

// RunConfig contains configuration for running a command.
type RunConfig struct {
	// Binary is the executable name or path. Bare names are resolved
	// against PATH.
	Binary string

	// Args are the command arguments (excluding the binary name).
	Args []string

	// Env is the complete child environment. If nil, the parent
	// environment is inherited.
	Env []string

	// WorkingDir is the working directory.
	WorkingDir string

	// Stdin provides input to the command.
	Stdin io.Reader
}

// RunResult contains the result of command execution.
type RunResult struct {
	// ExitCode is the process exit code.
	ExitCode int

	// Stdout contains captured standard output.
	Stdout []byte

	// Stderr contains captured standard error.
	Stderr []byte

	// Duration is the wall clock time of execution.
	Duration time.Duration
}

// Run executes a command to completion with the given context.
// Both output streams are fully consumed before Run returns, so the child
// can never block on a full pipe buffer.
//
// A non-zero exit code is NOT an error: Run returns a populated RunResult
// and a nil error for any run that started and ran to completion. The error
// return is reserved for spawn failures, I/O failures and context
// cancellation, which are propagated from the platform unwrapped.
func (r *Runner) Run(ctx context.Context, config *RunConfig) (*RunResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// #nosec G204 -- Binary and Args are validated by the executor package
	// and passed as separate arguments, never through a shell.
	cmd := exec.CommandContext(ctx, config.Binary, config.Args...)

	if config.Env != nil {
		cmd.Env = config.Env
	}
	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}
	if config.Stdin != nil {
		cmd.Stdin = config.Stdin
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	// A completed run with a non-zero exit surfaces as *exec.ExitError.
	// That is an outcome, not a failure of the runner.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Stdout:   stdoutBuf.Bytes(),
		Stderr:   stderrBuf.Bytes(),
		Duration: duration,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	return result, nil
}

// LookPath resolves an executable name against the search path.
// Exposed here so no other package needs to import os/exec.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
