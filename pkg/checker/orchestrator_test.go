package checker

import (
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCall records a single command invocation.
type mockCall struct {
	Name string
	Args []string
	Opts ExecOptions
}

// mockExecutor records calls and returns a pre-configured result.
type mockExecutor struct {
	calls  []mockCall
	result *ExecResult
	err    error
}

func (m *mockExecutor) Run(_ context.Context, name string, args []string, opts ExecOptions) (*ExecResult, error) {
	m.calls = append(m.calls, mockCall{Name: name, Args: args, Opts: opts})
	return m.result, m.err
}

type recordingHost struct {
	lines []string
}

func (h *recordingHost) Info(line string) { h.lines = append(h.lines, line) }

const (
	nodeVersion  = "v16.14.2"
	nodeExecPath = "/path/to/node"
)

var checkerArgs = []string{"/path/to/pyright/dist/index.js", "--outputjson"}

func newPlan(mode OutputMode, wd string) Plan {
	return Plan{
		Runtime: Runtime{Version: nodeVersion, ExecPath: nodeExecPath},
		Invocation: Invocation{
			CheckerVersion:   semver.MustParse("1.1.240"),
			Output:           mode,
			WorkingDirectory: wd,
			Args:             checkerArgs,
		},
	}
}

type chdirRecorder struct {
	dirs []string
	err  error
}

func (c *chdirRecorder) chdir(dir string) error {
	c.dirs = append(c.dirs, dir)
	return c.err
}

func TestRunStreamOutput(t *testing.T) {
	mock := &mockExecutor{result: &ExecResult{ExitCode: 1}}
	host := &recordingHost{}
	cd := &chdirRecorder{}

	o := NewOrchestrator(mock, host, WithChdir(cd.chdir), WithActionVersion("1.0.0"), WithLogger(logr.Discard()))
	res, err := o.Run(context.Background(), newPlan(StreamOutput{}, "/some/wd"))
	require.NoError(t, err)

	assert.Equal(t, []string{"/some/wd"}, cd.dirs)
	assert.Equal(t, []string{
		"pyright 1.1.240, node v16.14.2, pyright-action 1.0.0",
		"/path/to/node /path/to/pyright/dist/index.js --outputjson",
	}, host.lines)

	require.Len(t, mock.calls, 1)
	assert.Equal(t, nodeExecPath, mock.calls[0].Name)
	assert.Equal(t, checkerArgs, mock.calls[0].Args)
	assert.Equal(t, ExecOptions{Stdin: StdioIgnore, Stdout: StdioInherit, Stderr: StdioInherit}, mock.calls[0].Opts)

	require.NotNil(t, res.ExitCode)
	assert.Equal(t, 1, *res.ExitCode)
	assert.Empty(t, res.Signal)
	assert.Nil(t, res.Stdout, "stream mode must not capture stdout")
}

func TestRunJSONOutput(t *testing.T) {
	mock := &mockExecutor{result: &ExecResult{ExitCode: 2, Stdout: []byte(`{"generalDiagnostics":[]}`)}}
	host := &recordingHost{}
	cd := &chdirRecorder{}

	o := NewOrchestrator(mock, host, WithChdir(cd.chdir))
	res, err := o.Run(context.Background(), newPlan(JSONOutput{}, ""))
	require.NoError(t, err)

	assert.Empty(t, cd.dirs, "empty working directory must not change directory")
	require.Len(t, mock.calls, 1)
	assert.Equal(t, ExecOptions{Stdin: StdioIgnore, Stdout: StdioPipe, Stderr: StdioInherit}, mock.calls[0].Opts)

	require.NotNil(t, res.ExitCode)
	assert.Equal(t, 2, *res.ExitCode)
	require.NotNil(t, res.Stdout)
	assert.Equal(t, `{"generalDiagnostics":[]}`, *res.Stdout)
}

func TestRunSignal(t *testing.T) {
	mock := &mockExecutor{result: &ExecResult{Signal: "SIGKILL"}}
	o := NewOrchestrator(mock, &recordingHost{}, WithChdir(func(string) error { return nil }))

	res, err := o.Run(context.Background(), newPlan(JSONOutput{}, ""))
	require.NoError(t, err)

	assert.Nil(t, res.ExitCode)
	assert.Equal(t, "SIGKILL", res.Signal)
}

func TestRunChdirFailure(t *testing.T) {
	mock := &mockExecutor{result: &ExecResult{}}
	host := &recordingHost{}
	cd := &chdirRecorder{err: errors.New("no such file or directory")}

	o := NewOrchestrator(mock, host, WithChdir(cd.chdir))
	_, err := o.Run(context.Background(), newPlan(StreamOutput{}, "/missing"))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "/missing")
	assert.Contains(t, err.Error(), "no such file or directory")
	assert.Empty(t, mock.calls, "checker must not launch after a failed chdir")
	assert.Empty(t, host.lines)
}

func TestRunLaunchFailure(t *testing.T) {
	mock := &mockExecutor{err: errors.New(`exec: "node": executable file not found in $PATH`)}
	host := &recordingHost{}

	o := NewOrchestrator(mock, host, WithChdir(func(string) error { return nil }))
	_, err := o.Run(context.Background(), newPlan(StreamOutput{}, ""))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "executable file not found")
	assert.Len(t, host.lines, 2, "banner is logged before launch")
	assert.Len(t, mock.calls, 1)
}

func TestRunUnknownCheckerVersion(t *testing.T) {
	host := &recordingHost{}
	plan := newPlan(StreamOutput{}, "")
	plan.CheckerVersion = nil

	o := NewOrchestrator(&mockExecutor{result: &ExecResult{}}, host, WithActionVersion("dev"))
	_, err := o.Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, "pyright unknown, node v16.14.2, pyright-action dev", host.lines[0])
}

func TestRunBannerKeepsRequestedVersion(t *testing.T) {
	host := &recordingHost{}
	plan := newPlan(StreamOutput{}, "")
	plan.CheckerVersion = semver.MustParse("1.1")

	o := NewOrchestrator(&mockExecutor{result: &ExecResult{}}, host, WithActionVersion("dev"))
	_, err := o.Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, "pyright 1.1, node v16.14.2, pyright-action dev", host.lines[0])
}

func TestRunMissingOutputMode(t *testing.T) {
	mock := &mockExecutor{result: &ExecResult{}}
	plan := newPlan(nil, "")

	o := NewOrchestrator(mock, &recordingHost{})
	_, err := o.Run(context.Background(), plan)
	require.Error(t, err)
	assert.Empty(t, mock.calls)
}
