package runner

import (
	"context"
	"fmt"
	"strings"
)

// Describes one external tool invocation.
type Invocation struct {
	Args []string // Argument vector; Args[0] is the binary.
	Dir  string   // Working directory. Empty means the process's own.
	Env  []string // Full environment. Nil inherits the process environment.
}

// Executes external tools.
type Runner interface {

	// Runs the invocation, streaming output to the process's stdout and
	// stderr. Returns an *ExitError if the command exits non-zero.
	Run(ctx context.Context, inv Invocation) error

	// Runs the invocation and returns its captured stdout. On a non-zero
	// exit the captured stdout is still returned alongside an *ExitError,
	// since some tools emit structured error bodies on stdout.
	Output(ctx context.Context, inv Invocation) ([]byte, error)
}

// Reports a command that started but exited with a non-zero status.
//
// Only the binary name is recorded, not the argument vector, so secrets
// passed as arguments can never surface through the error text.
type ExitError struct {
	Command  string // Binary name (Args[0]).
	ExitCode int    // Exit status of the process.
	Stderr   string // Trimmed captured stderr, when available.
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// Merges override env vars on top of a base env slice.
//
// Later entries win. Malformed entries without an equals sign are dropped.
func MergeEnv(base, overrides []string) []string {
	merged := make(map[string]string, len(base)+len(overrides))
	order := make([]string, 0, len(base)+len(overrides))

	add := func(entries []string) {
		for _, entry := range entries {
			k, v, ok := strings.Cut(entry, "=")
			if !ok {
				continue
			}
			if _, seen := merged[k]; !seen {
				order = append(order, k)
			}
			merged[k] = v
		}
	}
	add(base)
	add(overrides)

	result := make([]string, 0, len(merged))
	for _, k := range order {
		result = append(result, k+"="+merged[k])
	}
	return result
}
