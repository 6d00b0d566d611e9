package validate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kineticfire-labs/shexec/executor"
)

// KeyIsValid is the mapping key carrying the "true"/"false" validity flag.
// The remaining keys of a validation mapping are shared with the executor
// package: exitValue, out and err.
const KeyIsValid = "isValid"

// Exit codes used by shellcheck. Only zero versus non-zero drives the
// validity flag; the specific non-zero values pass through unchanged.
const (
	// ExitNoIssues means no issues were found.
	ExitNoIssues = 0
	// ExitIssuesFound means syntax or usage issues were found.
	ExitIssuesFound = 1
	// ExitFileAccess means the tool could not access an input file.
	ExitFileAccess = 2
	// ExitNoInput means no input files were specified or all were ignored.
	ExitNoInput = 3
	// ExitInterrupted means the tool was interrupted by a signal.
	ExitInterrupted = 4
)

// ErrMalformedReport indicates a validation mapping that cannot be turned
// into a Report.
var ErrMalformedReport = errors.New("malformed validation result")

// Report is the immutable outcome of one script validation.
// It is constructed once per validation call and never mutated.
type Report struct {
	valid     bool
	exitCode  int
	output    string
	errOutput string
}

// Valid returns true if the lint tool found no issues (exit code zero).
func (r *Report) Valid() bool {
	return r.valid
}

// ExitCode returns the exit code of the lint tool.
func (r *Report) ExitCode() int {
	return r.exitCode
}

// Output returns the trimmed standard output of the lint tool, which
// carries its diagnostics.
func (r *Report) Output() string {
	return r.output
}

// ErrOutput returns the trimmed standard error of the lint tool.
func (r *Report) ErrOutput() string {
	return r.errOutput
}

// Map renders the report as the four-field string mapping with the keys
// isValid, exitValue, out and err.
func (r *Report) Map() map[string]string {
	return map[string]string{
		KeyIsValid:            strconv.FormatBool(r.valid),
		executor.KeyExitValue: strconv.Itoa(r.exitCode),
		executor.KeyOut:       r.output,
		executor.KeyErr:       r.errOutput,
	}
}

// String returns a string representation of the report.
func (r *Report) String() string {
	return fmt.Sprintf("Report{valid=%t exitCode=%d}", r.valid, r.exitCode)
}

// ReportFromMap constructs a Report from a validation mapping.
// The isValid and exitValue keys are mandatory and exitValue must parse as
// an integer; anything else fails construction immediately rather than
// producing a partially valid report.
func ReportFromMap(m map[string]string) (*Report, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: mapping is nil", ErrMalformedReport)
	}
	isValid, ok := m[KeyIsValid]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", ErrMalformedReport, KeyIsValid)
	}
	exitValue, ok := m[executor.KeyExitValue]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", ErrMalformedReport, executor.KeyExitValue)
	}
	exitCode, err := strconv.Atoi(exitValue)
	if err != nil {
		return nil, fmt.Errorf("%w: exit value %q is not an integer", ErrMalformedReport, exitValue)
	}
	return &Report{
		valid:     isValid == "true",
		exitCode:  exitCode,
		output:    m[executor.KeyOut],
		errOutput: m[executor.KeyErr],
	}, nil
}
