// Package checker launches the type checker as a child process.
package checker

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"

	"github.com/NissesSenap/pyright-action/pkg/version"
)

// InfoLogger receives the banner lines written before launch.
type InfoLogger interface {
	Info(line string)
}

// Result is the outcome of one checker launch.
type Result struct {
	ExitCode *int    // nil when the checker was killed by a signal
	Signal   string  // set when ExitCode is nil
	Stdout   *string // captured output, JSONOutput mode only
}

// Orchestrator changes directory, logs the invocation and runs the checker once.
type Orchestrator struct {
	exec    CommandExecutor
	host    InfoLogger
	chdir   func(dir string) error
	logger  logr.Logger
	version string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithChdir replaces os.Chdir (useful for testing).
func WithChdir(fn func(dir string) error) Option {
	return func(o *Orchestrator) { o.chdir = fn }
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithActionVersion overrides the action version shown in the banner.
func WithActionVersion(v string) Option {
	return func(o *Orchestrator) { o.version = v }
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(exec CommandExecutor, host InfoLogger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		exec:    exec,
		host:    host,
		chdir:   os.Chdir,
		logger:  logr.Discard(),
		version: version.Version,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes plan. The working directory change is process-wide and is
// not undone. Errors are returned only when the checker could not be
// launched; its exit status is always reported through Result.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) (*Result, error) {
	if plan.Output == nil {
		return nil, fmt.Errorf("plan has no output mode")
	}

	if plan.WorkingDirectory != "" {
		if err := o.chdir(plan.WorkingDirectory); err != nil {
			return nil, fmt.Errorf("changing directory to %s: %w", plan.WorkingDirectory, err)
		}
		o.logger.V(1).Info("changed working directory", "dir", plan.WorkingDirectory)
	}

	o.host.Info(fmt.Sprintf("pyright %s, node %s, pyright-action %s",
		versionString(plan), plan.Runtime.Version, o.version))
	o.host.Info(strings.Join(plan.Command(), " "))

	opts := ExecOptionsFor(plan.Output)
	o.logger.V(1).Info("launching checker", "mode", plan.Output.String(),
		"stdin", opts.Stdin.String(), "stdout", opts.Stdout.String(), "stderr", opts.Stderr.String())

	res, err := o.exec.Run(ctx, plan.ExecPath, plan.Args, opts)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", plan.ExecPath, err)
	}

	result := &Result{}
	if res.Signal != "" {
		result.Signal = res.Signal
	} else {
		code := res.ExitCode
		result.ExitCode = &code
	}
	if opts.Stdout == StdioPipe {
		stdout := string(res.Stdout)
		result.Stdout = &stdout
	}

	o.logger.V(1).Info("checker finished", "exitCode", res.ExitCode, "signal", res.Signal)
	return result, nil
}

// versionString shows the version as it was requested; "1.1" stays "1.1"
// rather than the normalised "1.1.0".
func versionString(plan Plan) string {
	if plan.CheckerVersion == nil {
		return "unknown"
	}
	return plan.CheckerVersion.Original()
}
