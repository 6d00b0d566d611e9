package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kineticfire-labs/shexec/executor"
	"github.com/victoralfred/gowritter/safepath"
)

// AuditLogger records executed commands as append-only JSONL.
type AuditLogger interface {
	// Log logs an audit event.
	Log(ctx context.Context, event *AuditEvent) error

	// Close closes the audit logger.
	Close() error
}

// AuditEvent represents one executed command.
type AuditEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	ID         string        `json:"id,omitempty"`
	Binary     string        `json:"binary"`
	Args       []string      `json:"args"`
	WorkingDir string        `json:"working_dir,omitempty"`
	ExitCode   int           `json:"exit_code"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	Output     string        `json:"output,omitempty"`
}

// AuditLogLevel determines which events to log.
type AuditLogLevel string

const (
	// AuditLogAll logs every execution.
	AuditLogAll AuditLogLevel = "all"

	// AuditLogFailures logs only non-zero exits and execution errors.
	AuditLogFailures AuditLogLevel = "failures"
)

// AuditConfig configures the audit logger.
type AuditConfig struct {
	Enabled       bool          `yaml:"enabled"`
	LogLevel      AuditLogLevel `yaml:"log_level"`
	IncludeOutput bool          `yaml:"include_output"`
	MaxOutputSize int           `yaml:"max_output_size"`
	BasePath      string        `yaml:"base_path"`
	FilePath      string        `yaml:"file_path"`
}

// DefaultAuditConfig returns default audit configuration.
// Auditing is off by default; failures surface to the caller regardless.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Enabled:       false,
		LogLevel:      AuditLogAll,
		IncludeOutput: false,
		MaxOutputSize: 1024,
		BasePath:      "/var/log",
		FilePath:      "shexec/audit.log",
	}
}

// fileAuditLogger implements AuditLogger using gowritter.
type fileAuditLogger struct {
	safePath *safepath.SafePath
	config   AuditConfig
	mu       sync.Mutex
}

// NewFileAuditLogger creates a new file-based audit logger.
func NewFileAuditLogger(config AuditConfig) (AuditLogger, error) {
	sp, err := safepath.New(config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("creating safe path: %w", err)
	}
	return &fileAuditLogger{
		config:   config,
		safePath: sp,
	}, nil
}

// Log implements AuditLogger.Log.
func (l *fileAuditLogger) Log(ctx context.Context, event *AuditEvent) error {
	if !l.config.Enabled || !l.shouldLog(event) {
		return nil
	}

	if !l.config.IncludeOutput {
		event.Output = ""
	} else if len(event.Output) > l.config.MaxOutputSize {
		event.Output = event.Output[:l.config.MaxOutputSize] + "...(truncated)"
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling audit event: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.safePath.AppendFile(l.config.FilePath, data, 0o644); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}

// Close implements AuditLogger.Close.
func (l *fileAuditLogger) Close() error {
	return nil
}

func (l *fileAuditLogger) shouldLog(event *AuditEvent) bool {
	if l.config.LogLevel == AuditLogFailures {
		return event.ExitCode != 0 || event.Error != ""
	}
	return true
}

// CreateAuditEvent creates an audit event from an execution outcome.
// Either outcome or execErr may be nil, never both.
func CreateAuditEvent(cmd *executor.Command, outcome *executor.Outcome, execErr error) *AuditEvent {
	event := &AuditEvent{
		Timestamp:  time.Now(),
		Binary:     cmd.Binary,
		Args:       cmd.Args,
		WorkingDir: cmd.WorkingDir,
	}
	if outcome != nil {
		event.ID = outcome.CommandID
		event.ExitCode = outcome.ExitCode
		event.Duration = outcome.Duration
		event.Output = outcome.Stdout
	}
	if execErr != nil {
		event.Error = execErr.Error()
	}
	return event
}

// AuditHook adapts an AuditLogger into the executor's hook seam so every
// run is recorded after it completes.
type AuditHook struct {
	logger AuditLogger
}

// NewAuditHook creates an audit hook.
func NewAuditHook(logger AuditLogger) *AuditHook {
	return &AuditHook{logger: logger}
}

// PreExecute implements executor.Hook.
func (h *AuditHook) PreExecute(ctx context.Context, cmd *executor.Command) (*executor.Command, error) {
	return cmd, nil
}

// PostExecute implements executor.Hook.
func (h *AuditHook) PostExecute(ctx context.Context, cmd *executor.Command, outcome *executor.Outcome, err error) error {
	return h.logger.Log(ctx, CreateAuditEvent(cmd, outcome, err))
}

// NoopAuditLogger returns a no-op audit logger.
func NoopAuditLogger() AuditLogger {
	return &noopAuditLogger{}
}

type noopAuditLogger struct{}

func (l *noopAuditLogger) Log(ctx context.Context, event *AuditEvent) error { return nil }
func (l *noopAuditLogger) Close() error                                     { return nil }
