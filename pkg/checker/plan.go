package checker

import (
	"github.com/Masterminds/semver/v3"
)

// Runtime describes the executable used to run the checker.
type Runtime struct {
	Version  string
	ExecPath string
}

// Invocation is the per-run checker configuration produced by argument resolution.
type Invocation struct {
	CheckerVersion   *semver.Version
	Output           OutputMode
	WorkingDirectory string // empty means stay in the current directory
	Args             []string
}

// Plan is everything needed for one checker launch.
type Plan struct {
	Runtime
	Invocation
}

// Command returns the runtime executable followed by the checker arguments.
func (p Plan) Command() []string {
	return append([]string{p.ExecPath}, p.Args...)
}

// OutputMode selects how the checker's standard streams are wired.
// The set of modes is closed: StreamOutput and JSONOutput.
type OutputMode interface {
	execOptions() ExecOptions
	String() string
}

// StreamOutput inherits stdout and stderr so the checker's human readable
// output streams straight into the job log. No annotations are produced.
type StreamOutput struct{}

func (StreamOutput) execOptions() ExecOptions {
	return ExecOptions{Stdin: StdioIgnore, Stdout: StdioInherit, Stderr: StdioInherit}
}

func (StreamOutput) String() string { return "stream" }

// JSONOutput captures stdout for diagnostic parsing and inherits stderr.
type JSONOutput struct{}

func (JSONOutput) execOptions() ExecOptions {
	return ExecOptions{Stdin: StdioIgnore, Stdout: StdioPipe, Stderr: StdioInherit}
}

func (JSONOutput) String() string { return "json" }

// ExecOptionsFor returns the stdio wiring used for mode.
func ExecOptionsFor(mode OutputMode) ExecOptions {
	return mode.execOptions()
}
