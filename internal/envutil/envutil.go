// Package envutil provides environment variable utilities.
package envutil

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Inherited returns the parent process environment as a map.
func Inherited() map[string]string {
	environ := os.Environ()
	result := make(map[string]string, len(environ))
	for _, e := range environ {
		if idx := strings.IndexByte(e, '='); idx > 0 {
			result[e[:idx]] = e[idx+1:]
		}
	}
	return result
}

// Merge merges base environment with overrides.
// Overrides take precedence.
func Merge(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		result[k] = v
	}
	return result
}

// Build renders an environment map as KEY=VALUE pairs.
// Entries are sorted by key for deterministic output.
func Build(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}
