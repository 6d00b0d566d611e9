package validate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kineticfire-labs/shexec/executor"
)

func TestReportFromMap_WellFormed(t *testing.T) {
	m := map[string]string{
		KeyIsValid:            "false",
		executor.KeyExitValue: "1",
		executor.KeyOut:       "SC2086: quote this",
		executor.KeyErr:       "",
	}

	report, err := ReportFromMap(m)
	if err != nil {
		t.Fatalf("ReportFromMap() failed: %v", err)
	}
	if report.Valid() {
		t.Error("Valid() = true, want false")
	}
	if report.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", report.ExitCode())
	}
	if report.Output() != "SC2086: quote this" {
		t.Errorf("Output() = %q", report.Output())
	}
	if report.ErrOutput() != "" {
		t.Errorf("ErrOutput() = %q, want empty", report.ErrOutput())
	}
}

func TestReportFromMap_RoundTrip(t *testing.T) {
	m := map[string]string{
		KeyIsValid:            "true",
		executor.KeyExitValue: "0",
		executor.KeyOut:       "clean",
		executor.KeyErr:       "noise",
	}

	report, err := ReportFromMap(m)
	if err != nil {
		t.Fatalf("ReportFromMap() failed: %v", err)
	}
	if got := report.Map(); !reflect.DeepEqual(got, m) {
		t.Errorf("round trip mismatch: got %v, want %v", got, m)
	}
}

func TestReportFromMap_Malformed(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]string
	}{
		{"nil mapping", nil},
		{"missing isValid", map[string]string{executor.KeyExitValue: "0"}},
		{"missing exitValue", map[string]string{KeyIsValid: "true"}},
		{"non-integer exitValue", map[string]string{
			KeyIsValid:            "true",
			executor.KeyExitValue: "not-a-number",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReportFromMap(tt.m)
			if !errors.Is(err, ErrMalformedReport) {
				t.Errorf("expected ErrMalformedReport, got %v", err)
			}
		})
	}
}

func TestReportFromMap_MissingOutputKeysDefaultEmpty(t *testing.T) {
	report, err := ReportFromMap(map[string]string{
		KeyIsValid:            "true",
		executor.KeyExitValue: "0",
	})
	if err != nil {
		t.Fatalf("ReportFromMap() failed: %v", err)
	}
	if report.Output() != "" || report.ErrOutput() != "" {
		t.Error("absent out/err keys should default to empty strings")
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{valid: true, exitCode: 0}
	got := report.String()
	if got != "Report{valid=true exitCode=0}" {
		t.Errorf("String() = %q", got)
	}
}
