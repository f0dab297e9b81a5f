package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Runner backed by os/exec.
type execRunner struct{}

// Returns a Runner that executes commands on the host.
func New() Runner {
	return execRunner{}
}

// Runs the invocation with stdout and stderr attached to the process's own
// streams, so build output is visible as it happens.
func (execRunner) Run(ctx context.Context, inv Invocation) error {
	cmd, err := newCommand(ctx, inv)
	if err != nil {
		return err
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Debug("run", "command", inv.Args, "dir", inv.Dir)

	if err := cmd.Run(); err != nil {
		return wrapRunError(inv.Args[0], err, "")
	}
	return nil
}

// Runs the invocation and captures stdout. Stderr is captured separately and
// folded into the ExitError on failure.
func (execRunner) Output(ctx context.Context, inv Invocation) ([]byte, error) {
	cmd, err := newCommand(ctx, inv)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("run", "command", inv.Args, "dir", inv.Dir)

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), wrapRunError(inv.Args[0], err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Builds an exec.Cmd from the invocation.
func newCommand(ctx context.Context, inv Invocation) (*exec.Cmd, error) {
	if len(inv.Args) == 0 {
		return nil, errors.New("empty argument vector")
	}

	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = inv.Env
	return cmd, nil
}

// Converts an exec failure into an *ExitError when the command ran and
// exited non-zero, and otherwise wraps it with the binary name.
func wrapRunError(command string, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Command:  command,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr),
		}
	}
	return fmt.Errorf("%s: %w", command, err)
}
