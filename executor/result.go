package executor

import (
	"strconv"
	"time"
)

// Keys of the string mapping rendered by Outcome.Map.
const (
	// KeySuccess holds "true" when the exit code was zero.
	KeySuccess = "success"

	// KeyExitValue holds the decimal string form of the exit code.
	KeyExitValue = "exitValue"

	// KeyOut holds trimmed standard output.
	KeyOut = "out"

	// KeyErr holds trimmed standard error.
	KeyErr = "err"
)

// Outcome contains the outcome of one subprocess run. All fields are fully
// populated once a run completes; an Outcome is never partially filled in.
type Outcome struct {
	// CommandID uniquely identifies this run.
	CommandID string

	// ExitCode is the process exit code.
	ExitCode int

	// Stdout is the captured standard output with leading and trailing
	// whitespace removed. Internal whitespace is preserved.
	Stdout string

	// Stderr is the captured standard error, trimmed the same way.
	Stderr string

	// Duration is the wall clock time of the run.
	Duration time.Duration
}

// Success returns true if the process exited with code zero.
func (o *Outcome) Success() bool {
	return o.ExitCode == 0
}

// Map renders the outcome as a four-field string mapping with the keys
// success, exitValue, out and err. The typed Outcome is the primary
// representation; the mapping exists for callers that consume the
// stringly-keyed wire form.
func (o *Outcome) Map() map[string]string {
	return map[string]string{
		KeySuccess:   strconv.FormatBool(o.Success()),
		KeyExitValue: strconv.Itoa(o.ExitCode),
		KeyOut:       o.Stdout,
		KeyErr:       o.Stderr,
	}
}
