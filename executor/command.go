// Package executor provides the core command execution abstraction.
package executor

import (
	"fmt"
	"os"
)

// EnvMode controls how a Command's Env overlay combines with the environment
// inherited from the parent process.
type EnvMode int

const (
	// EnvMerge overlays Env on top of the inherited environment.
	// Overlay values win on conflicting names. This is the default.
	EnvMerge EnvMode = iota

	// EnvReplace uses Env as the entire child environment, discarding
	// everything inherited from the parent process.
	EnvReplace
)

// String returns the string representation of the env mode.
func (m EnvMode) String() string {
	switch m {
	case EnvMerge:
		return "merge"
	case EnvReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Command represents a command to be executed.
// Commands are immutable once built.
type Command struct {
	// Binary is the executable name or path. Bare names are resolved
	// against the executable search path by the operating system.
	Binary string

	// Args are the command arguments (excluding the binary name).
	Args []string

	// Env is the environment variable overlay for the command.
	// How it combines with the inherited environment is governed by EnvMode.
	Env map[string]string

	// EnvMode selects merge or replace semantics for Env.
	EnvMode EnvMode

	// WorkingDir is the working directory for the command.
	// If set, it must exist and be a directory.
	WorkingDir string
}

// CommandBuilder provides a fluent API for constructing commands.
type CommandBuilder struct {
	cmd *Command
	err error
}

// NewCommand creates a new CommandBuilder with the specified binary and arguments.
func NewCommand(binary string, args ...string) *CommandBuilder {
	return &CommandBuilder{
		cmd: &Command{
			Binary: binary,
			Args:   args,
			Env:    make(map[string]string),
		},
	}
}

// FromArgv creates a CommandBuilder from an ordered argument list where the
// first element is the binary and the remainder are its arguments.
func FromArgv(argv []string) *CommandBuilder {
	if len(argv) == 0 {
		return &CommandBuilder{
			cmd: &Command{Env: make(map[string]string)},
			err: fmt.Errorf("%w: command list is empty", ErrInvalidCommand),
		}
	}
	return NewCommand(argv[0], argv[1:]...)
}

// WithWorkingDir sets the working directory.
func (b *CommandBuilder) WithWorkingDir(dir string) *CommandBuilder {
	if b.err != nil {
		return b
	}
	b.cmd.WorkingDir = dir
	return b
}

// WithEnv adds an environment variable to the overlay.
func (b *CommandBuilder) WithEnv(key, value string) *CommandBuilder {
	if b.err != nil {
		return b
	}
	b.cmd.Env[key] = value
	return b
}

// WithEnvMap adds multiple environment variables to the overlay.
func (b *CommandBuilder) WithEnvMap(env map[string]string) *CommandBuilder {
	if b.err != nil {
		return b
	}
	for k, v := range env {
		b.cmd.Env[k] = v
	}
	return b
}

// WithEnvMode sets the overlay combination semantics.
func (b *CommandBuilder) WithEnvMode(mode EnvMode) *CommandBuilder {
	if b.err != nil {
		return b
	}
	b.cmd.EnvMode = mode
	return b
}

// Build validates and returns the command.
func (b *CommandBuilder) Build() (*Command, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cmd.validate(); err != nil {
		return nil, err
	}
	return b.cmd, nil
}

// MustBuild validates and returns the command, panicking on error.
func (b *CommandBuilder) MustBuild() *Command {
	cmd, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cmd
}

// validate checks command preconditions. It runs before any subprocess is
// spawned so malformed input never reaches the operating system.
func (c *Command) validate() error {
	if c.Binary == "" {
		return fmt.Errorf("%w: binary is required", ErrInvalidCommand)
	}
	if c.WorkingDir != "" {
		info, err := os.Stat(c.WorkingDir)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrWorkingDir, c.WorkingDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %q is not a directory", ErrWorkingDir, c.WorkingDir)
		}
	}
	return nil
}

// Clone creates a deep copy of the command.
func (c *Command) Clone() *Command {
	clone := &Command{
		Binary:     c.Binary,
		Args:       make([]string, len(c.Args)),
		Env:        make(map[string]string, len(c.Env)),
		EnvMode:    c.EnvMode,
		WorkingDir: c.WorkingDir,
	}
	copy(clone.Args, c.Args)
	for k, v := range c.Env {
		clone.Env[k] = v
	}
	return clone
}

// Argv returns the command as an ordered argument list, binary first.
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Binary)
	argv = append(argv, c.Args...)
	return argv
}

// String returns a string representation of the command.
func (c *Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return fmt.Sprintf("%s %v", c.Binary, c.Args)
}
