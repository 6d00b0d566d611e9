package shexec_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/kineticfire-labs/shexec"
	internalexec "github.com/kineticfire-labs/shexec/internal/exec"
	"github.com/kineticfire-labs/shexec/validate"
)

// These tests run real OS processes against the standard Unix utilities.

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires Unix utilities")
	}
}

func TestOutput_Echo(t *testing.T) {
	requireUnix(t)

	out, err := shexec.Output(context.Background(), "echo", "hi")
	if err != nil {
		t.Fatalf("Output() failed: %v", err)
	}
	if out != "hi" {
		t.Errorf("Output() = %q, want %q", out, "hi")
	}
}

func TestOutput_FalseFails(t *testing.T) {
	requireUnix(t)

	_, err := shexec.Output(context.Background(), "false")
	var exitErr *shexec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", exitErr.ExitCode)
	}
}

func TestRun_FalseReportsWithoutError(t *testing.T) {
	requireUnix(t)

	outcome, err := shexec.Run(context.Background(), "false")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if outcome.Success() {
		t.Error("Success() = true, want false")
	}
	if outcome.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", outcome.ExitCode)
	}
	if outcome.Stdout != "" || outcome.Stderr != "" {
		t.Errorf("streams = (%q, %q), want empty", outcome.Stdout, outcome.Stderr)
	}
}

func TestRun_SpecificExitCode(t *testing.T) {
	requireUnix(t)

	outcome, err := shexec.Run(context.Background(), "sh", "-c", "exit 7")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if outcome.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", outcome.ExitCode)
	}
}

func TestRun_StderrCaptured(t *testing.T) {
	requireUnix(t)

	outcome, err := shexec.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 2")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if outcome.Stderr != "oops" {
		t.Errorf("Stderr = %q, want %q", outcome.Stderr, "oops")
	}
	if outcome.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", outcome.ExitCode)
	}
}

func TestRunArgv_MapShape(t *testing.T) {
	requireUnix(t)

	m, err := shexec.RunArgv(context.Background(), []string{"echo", "hi"})
	if err != nil {
		t.Fatalf("RunArgv() failed: %v", err)
	}
	want := map[string]string{
		"success":   "true",
		"exitValue": "0",
		"out":       "hi",
		"err":       "",
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("map[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestRunArgv_Empty(t *testing.T) {
	_, err := shexec.RunArgv(context.Background(), nil)
	if !errors.Is(err, shexec.ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	requireUnix(t)

	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}

	exec, err := shexec.New()
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := shexec.Cmd("pwd").WithWorkingDir(dir).Build()
	if err != nil {
		t.Fatal(err)
	}

	out, err := exec.Output(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Output() failed: %v", err)
	}
	if out != dir && out != resolved {
		t.Errorf("pwd = %q, want %q", out, dir)
	}
}

func TestRun_EnvOverlayMerged(t *testing.T) {
	requireUnix(t)

	exec, err := shexec.New()
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := shexec.Cmd("sh", "-c", `printf '%s' "$SHEXEC_OVERLAY"`).
		WithEnv("SHEXEC_OVERLAY", "set-by-test").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	out, err := exec.Output(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Output() failed: %v", err)
	}
	if out != "set-by-test" {
		t.Errorf("overlay variable = %q, want %q", out, "set-by-test")
	}
}

func TestValidateScript_RealShellcheck(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("validation runs on Unix platforms only")
	}
	if _, err := internalexec.LookPath(validate.DefaultTool); err != nil {
		t.Skip("shellcheck not installed")
	}

	dir := t.TempDir()

	good := filepath.Join(dir, "good.sh")
	if err := os.WriteFile(good, []byte("#!/bin/sh\necho \"hello\"\n"), 0o700); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.sh")
	if err := os.WriteFile(bad, []byte("#!/bin/sh\necho $unquoted\n"), 0o700); err != nil {
		t.Fatal(err)
	}

	goodReport, err := shexec.ValidateScript(context.Background(), good)
	if err != nil {
		t.Fatalf("ValidateScript(good) failed: %v", err)
	}
	if !goodReport.Valid() {
		t.Errorf("good script reported invalid: %s", goodReport.Output())
	}

	badReport, err := shexec.ValidateScript(context.Background(), bad)
	if err != nil {
		t.Fatalf("ValidateScript(bad) failed: %v", err)
	}
	if badReport.Valid() {
		t.Error("unquoted expansion should fail validation")
	}
	if !strings.Contains(badReport.Output(), "SC") {
		t.Errorf("diagnostics should carry shellcheck codes, got %q", badReport.Output())
	}
}

func TestValidateScriptFile_NilFile(t *testing.T) {
	_, err := shexec.ValidateScriptFile(context.Background(), nil)
	if !errors.Is(err, shexec.ErrNoScript) {
		t.Errorf("expected ErrNoScript for a nil file, got %v", err)
	}
}

func TestValidateScriptMap_MissingTool(t *testing.T) {
	v, err := validate.New(
		validate.WithOS("linux"),
		validate.WithLookPath(func(string) (string, error) {
			return "", errors.New("not found")
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = v.ScriptMap(context.Background(), "any.sh")
	if !errors.Is(err, shexec.ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}
