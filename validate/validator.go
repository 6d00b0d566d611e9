// Package validate checks shell scripts by shelling out to an external
// static-analysis tool and normalizing its exit code into a validity flag.
//
// The package contains no shell parsing of its own: it classifies the host
// platform, verifies the lint tool is installed, runs it through the
// executor package's report-form call shape, and reinterprets the exit code
// as valid (zero) or invalid (non-zero).
package validate

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/kineticfire-labs/shexec/executor"
	internalexec "github.com/kineticfire-labs/shexec/internal/exec"
)

// DefaultTool is the lint tool used on Unix-like platforms.
const DefaultTool = "shellcheck"

// Sentinel errors for validation preconditions.
var (
	// ErrToolNotFound indicates the lint tool is not on the search path.
	ErrToolNotFound = errors.New("lint tool not found")

	// ErrUnsupportedPlatform indicates the host OS family has no
	// validation strategy.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoScript indicates an empty script path.
	ErrNoScript = errors.New("script path is empty")
)

// ToolNotFoundError reports an absent lint tool with installation
// instructions, instead of the platform's bare "command not found".
type ToolNotFoundError struct {
	// Tool is the missing executable name.
	Tool string
}

// Error returns the error message including installation instructions.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("the %q utility is required for script validation but was not found on the executable search path; install it with one of:\n"+
		"  - Ubuntu/Debian: apt install shellcheck\n"+
		"  - Fedora/RHEL:   dnf install ShellCheck\n"+
		"  - macOS:         brew install shellcheck\n"+
		"  - from source:   https://github.com/koalaman/shellcheck#installing",
		e.Tool)
}

// Unwrap returns ErrToolNotFound.
func (e *ToolNotFoundError) Unwrap() error {
	return ErrToolNotFound
}

// UnsupportedPlatformError reports a host OS family with no validation
// strategy, naming the detected OS.
type UnsupportedPlatformError struct {
	// OS is the host-identifying string that was classified.
	OS string

	// Platform is the classification of OS.
	Platform Platform
}

// Error returns the error message.
func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("script validation is not supported on OS %q (%s)", e.OS, e.Platform)
}

// Unwrap returns ErrUnsupportedPlatform.
func (e *UnsupportedPlatformError) Unwrap() error {
	return ErrUnsupportedPlatform
}

// LookPath resolves a tool name on the executable search path.
type LookPath func(name string) (string, error)

// Validator validates shell scripts with an external lint tool.
// A Validator holds no per-call state and is safe for concurrent use.
type Validator struct {
	exec     executor.Executor
	look     LookPath
	osName   string
	platform Platform
	tool     string
	toolArgs []string
}

// Option configures a Validator.
type Option func(*Validator)

// WithExecutor sets the executor used to run the lint tool.
func WithExecutor(e executor.Executor) Option {
	return func(v *Validator) {
		v.exec = e
	}
}

// WithLookPath sets the tool lookup function. Intended for tests.
func WithLookPath(look LookPath) Option {
	return func(v *Validator) {
		v.look = look
	}
}

// WithOS overrides the host-identifying OS string. The platform is
// re-classified from the given name. Intended for tests and cross-host
// dispatch checks.
func WithOS(name string) Option {
	return func(v *Validator) {
		v.osName = name
		v.platform = ClassifyOS(name)
	}
}

// WithTool overrides the lint tool and its leading arguments. The script
// path is always appended as the final positional argument.
func WithTool(name string, args ...string) Option {
	return func(v *Validator) {
		v.tool = name
		v.toolArgs = args
	}
}

// New creates a Validator. Defaults: the host's runtime.GOOS, the
// shellcheck tool, PATH lookup via the OS, and a plain executor.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		look:     internalexec.LookPath,
		osName:   runtime.GOOS,
		platform: ClassifyOS(runtime.GOOS),
		tool:     DefaultTool,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.exec == nil {
		e, err := executor.NewBuilder().Build()
		if err != nil {
			return nil, err
		}
		v.exec = e
	}
	return v, nil
}

// Script validates the shell script at the given path and returns a Report.
// It fails without reading the script when the platform is unsupported or
// the lint tool is not installed.
func (v *Validator) Script(ctx context.Context, path string) (*Report, error) {
	if path == "" {
		return nil, ErrNoScript
	}
	switch v.platform {
	case PlatformUnix:
		return v.scriptUnix(ctx, path)
	default:
		return nil, &UnsupportedPlatformError{OS: v.osName, Platform: v.platform}
	}
}

// ScriptMap validates the script and returns the four-field string mapping
// with the keys isValid, exitValue, out and err.
func (v *Validator) ScriptMap(ctx context.Context, path string) (map[string]string, error) {
	report, err := v.Script(ctx, path)
	if err != nil {
		return nil, err
	}
	return report.Map(), nil
}

// scriptUnix is the Unix-like strategy: pre-flight tool probe, then one
// lint run through the report-form executor so a non-zero exit (issues
// found) is data rather than an execution failure.
func (v *Validator) scriptUnix(ctx context.Context, path string) (*Report, error) {
	if _, err := v.look(v.tool); err != nil {
		return nil, &ToolNotFoundError{Tool: v.tool}
	}

	args := make([]string, 0, len(v.toolArgs)+1)
	args = append(args, v.toolArgs...)
	args = append(args, path)

	cmd, err := executor.NewCommand(v.tool, args...).Build()
	if err != nil {
		return nil, err
	}

	outcome, err := v.exec.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return &Report{
		valid:     outcome.Success(),
		exitCode:  outcome.ExitCode,
		output:    outcome.Stdout,
		errOutput: outcome.Stderr,
	}, nil
}
