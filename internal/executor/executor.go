// Package executor runs external programs for the release workflow.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Runner is an interface for executing commands. It allows tests to inject
// fake implementations without running real programs.
type Runner interface {
	Execute(ctx context.Context, command string, cwd string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error
}

// Executor runs commands directly (no intermediate shell). Commands are
// given as shell-quoted strings and split into argv with shellquote.
type Executor struct {
	DryRun  bool
	Verbose bool
}

// New returns a Runner backed by the real Executor implementation.
func New(dry, verbose bool) Runner {
	return &Executor{DryRun: dry, Verbose: verbose}
}

// CommandError describes a command that could not be started or exited
// non-zero.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command failed: %v (command=%q stderr=%q)", e.Err, e.Command, e.Stderr)
	}
	return fmt.Sprintf("command failed: %v (command=%q)", e.Err, e.Command)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code, or -1 when the command did not run.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Join quotes argv into a single command string accepted by Execute.
func Join(argv ...string) string {
	return shellquote.Join(argv...)
}

// Split parses a command string into argv.
func Split(command string) ([]string, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("invalid command: empty")
	}
	return argv, nil
}

// Execute splits command into argv and runs it in cwd. stdout and stderr
// receive the process output as it is produced; stderr is also captured for
// the returned *CommandError. In dry-run mode the command is printed to
// stdout and not run.
func (e *Executor) Execute(ctx context.Context, command string, cwd string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	argv, err := Split(command)
	if err != nil {
		return err
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if e.DryRun {
		_, _ = fmt.Fprintf(stdout, "dry-run: %s\n", command)
		return nil
	}
	if e.Verbose {
		slog.Debug("exec", "command", command, "cwd", cwd)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	var berr bytes.Buffer
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &berr)
	if err := cmd.Run(); err != nil {
		return &CommandError{Command: command, Stderr: strings.TrimSpace(berr.String()), Err: err}
	}
	return nil
}
