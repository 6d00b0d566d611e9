package executor

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition failures.
var (
	// ErrInvalidCommand indicates a malformed command (empty binary or
	// empty argument list). Reported before any subprocess is spawned.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrWorkingDir indicates a working directory that does not exist or
	// is not a directory.
	ErrWorkingDir = errors.New("invalid working directory")
)

// ExitError reports a non-zero exit code from the fail-fast call shape.
// It carries the captured exit code and both output streams so the caller
// can diagnose the failure without re-running the command.
type ExitError struct {
	// Binary is the binary that was executed.
	Binary string

	// ExitCode is the non-zero exit code.
	ExitCode int

	// Stdout is the trimmed standard output captured before exit.
	Stdout string

	// Stderr is the trimmed standard error captured before exit.
	Stderr string
}

// Error returns the error message.
func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: exit code %d: %s", e.Binary, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s: exit code %d", e.Binary, e.ExitCode)
}

// NewExitError creates an ExitError from an outcome with a non-zero exit code.
func NewExitError(binary string, outcome *Outcome) *ExitError {
	return &ExitError{
		Binary:   binary,
		ExitCode: outcome.ExitCode,
		Stdout:   outcome.Stdout,
		Stderr:   outcome.Stderr,
	}
}
