package executor

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	err := &ExitError{Binary: "lint", ExitCode: 2, Stderr: "cannot open file"}
	msg := err.Error()
	if !strings.Contains(msg, "lint") {
		t.Errorf("message %q should contain the binary", msg)
	}
	if !strings.Contains(msg, "2") {
		t.Errorf("message %q should contain the exit code", msg)
	}
	if !strings.Contains(msg, "cannot open file") {
		t.Errorf("message %q should contain stderr", msg)
	}
}

func TestExitError_NoStderr(t *testing.T) {
	err := &ExitError{Binary: "false", ExitCode: 1}
	if got := err.Error(); got != "false: exit code 1" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNewExitError(t *testing.T) {
	outcome := &Outcome{ExitCode: 7, Stdout: "out", Stderr: "err"}
	err := NewExitError("cmd", outcome)
	if err.ExitCode != 7 || err.Stdout != "out" || err.Stderr != "err" || err.Binary != "cmd" {
		t.Errorf("NewExitError did not copy all fields: %+v", err)
	}
}

func TestExitError_As(t *testing.T) {
	var wrapped error = fmt.Errorf("running: %w", &ExitError{Binary: "x", ExitCode: 5})
	var exitErr *ExitError
	if !errors.As(wrapped, &exitErr) {
		t.Fatal("errors.As should find *ExitError through wrapping")
	}
	if exitErr.ExitCode != 5 {
		t.Errorf("ExitCode = %d, want 5", exitErr.ExitCode)
	}
}

func TestSentinels_Distinct(t *testing.T) {
	if errors.Is(ErrInvalidCommand, ErrWorkingDir) {
		t.Error("sentinel errors must be distinct")
	}
}
