// Package resolve turns action inputs and the host environment into a
// checker plan.
package resolve

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"github.com/NissesSenap/pyright-action/pkg/checker"
)

// Node locates the node executable and asks it for its version.
type Node struct {
	// Path is an explicit executable; when empty "node" is looked up on PATH.
	Path     string
	Exec     checker.CommandExecutor
	LookPath func(file string) (string, error)
	Logger   logr.Logger
}

// Runtime resolves the node executable path and version string.
func (n *Node) Runtime(ctx context.Context) (checker.Runtime, error) {
	lookPath := n.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	name := n.Path
	if name == "" {
		name = "node"
	}

	found, err := lookPath(name)
	if err != nil {
		return checker.Runtime{}, fmt.Errorf("locating node: %w", err)
	}
	// The checker may run from another working directory.
	execPath, err := filepath.Abs(found)
	if err != nil {
		return checker.Runtime{}, fmt.Errorf("locating node: %w", err)
	}

	res, err := n.Exec.Run(ctx, execPath, []string{"--version"}, checker.ExecOptions{
		Stdin:  checker.StdioIgnore,
		Stdout: checker.StdioPipe,
		Stderr: checker.StdioPipe,
	})
	if err != nil {
		return checker.Runtime{}, fmt.Errorf("running %s --version: %w", execPath, err)
	}
	if res.Signal != "" || res.ExitCode != 0 {
		return checker.Runtime{}, fmt.Errorf("%s --version failed (exit %d%s): %s",
			execPath, res.ExitCode, signalSuffix(res.Signal), strings.TrimSpace(string(res.Stderr)))
	}

	version := strings.TrimSpace(string(res.Stdout))
	if version == "" {
		return checker.Runtime{}, fmt.Errorf("%s --version printed nothing", execPath)
	}

	n.Logger.V(1).Info("resolved runtime", "execPath", execPath, "version", version)
	return checker.Runtime{Version: version, ExecPath: execPath}, nil
}

func signalSuffix(sig string) string {
	if sig == "" {
		return ""
	}
	return ", signal " + sig
}
