package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// Stdio selects what a child's standard stream is connected to.
type Stdio int

const (
	// StdioIgnore connects the stream to the null device.
	StdioIgnore Stdio = iota
	// StdioInherit shares the parent's stream.
	StdioInherit
	// StdioPipe captures the stream into ExecResult.
	StdioPipe
)

func (s Stdio) String() string {
	switch s {
	case StdioIgnore:
		return "ignore"
	case StdioInherit:
		return "inherit"
	case StdioPipe:
		return "pipe"
	}
	return fmt.Sprintf("Stdio(%d)", int(s))
}

// ExecOptions configures command execution.
type ExecOptions struct {
	Stdin  Stdio
	Stdout Stdio
	Stderr Stdio
}

// ExecResult holds the outcome of a command execution.
// Exactly one of ExitCode and Signal is meaningful: Signal is non-empty
// when the child was terminated by a signal.
type ExecResult struct {
	Stdout   []byte // set only for StdioPipe
	Stderr   []byte // set only for StdioPipe
	ExitCode int
	Signal   string
}

// CommandExecutor abstracts os/exec for testing.
type CommandExecutor interface {
	// Run executes a command synchronously. Non-zero exits and signals are
	// reported through ExecResult; an error means the command could not be
	// run at all (not found, not executable).
	Run(ctx context.Context, name string, args []string, opts ExecOptions) (*ExecResult, error)
}

// OSExecutor implements CommandExecutor using os/exec.
type OSExecutor struct {
	// Stdout and Stderr are the streams inherited by the child.
	// They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

func (e *OSExecutor) Run(ctx context.Context, name string, args []string, opts ExecOptions) (*ExecResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	if opts.Stdin == StdioInherit {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = e.wire(opts.Stdout, &stdout, e.Stdout, os.Stdout)
	cmd.Stderr = e.wire(opts.Stderr, &stderr, e.Stderr, os.Stderr)

	err := cmd.Run()
	result := &ExecResult{}
	if opts.Stdout == StdioPipe {
		result.Stdout = stdout.Bytes()
	}
	if opts.Stderr == StdioPipe {
		result.Stderr = stderr.Bytes()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			result.Signal = signalName(status.Signal())
			return result, nil
		}
		result.ExitCode = exitErr.ExitCode()
	}

	return result, nil
}

func (e *OSExecutor) wire(mode Stdio, buf *bytes.Buffer, inherited, fallback io.Writer) io.Writer {
	switch mode {
	case StdioPipe:
		return buf
	case StdioInherit:
		if inherited != nil {
			return inherited
		}
		return fallback
	default:
		// nil makes os/exec connect the stream to the null device.
		return nil
	}
}
