package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-logr/logr"
	"github.com/mattn/go-shellwords"

	"github.com/NissesSenap/pyright-action/pkg/checker"
)

const versionLatest = "latest"

// Inputs are the raw action inputs, as strings, exactly as the runner
// provides them.
type Inputs struct {
	WorkingDirectory string
	Version          string
	PyrightPath      string
	PythonPlatform   string
	PythonVersion    string
	TypeshedPath     string
	VenvPath         string
	Project          string
	Lib              string
	Warnings         string
	Verbose          string
	ExtraArgs        string
	NoComments       string
}

// VersionLookup finds the newest published checker version.
type VersionLookup interface {
	Latest(ctx context.Context) (*semver.Version, error)
}

// Args resolves Inputs into a checker invocation.
type Args struct {
	Inputs Inputs
	Latest VersionLookup
	Logger logr.Logger
}

// Invocation validates the inputs and builds the checker argument list.
func (a *Args) Invocation(ctx context.Context) (checker.Invocation, error) {
	in := a.Inputs

	noComments, err := boolInput("no-comments", in.NoComments)
	if err != nil {
		return checker.Invocation{}, err
	}
	lib, err := boolInput("lib", in.Lib)
	if err != nil {
		return checker.Invocation{}, err
	}
	warnings, err := boolInput("warnings", in.Warnings)
	if err != nil {
		return checker.Invocation{}, err
	}
	verbose, err := boolInput("verbose", in.Verbose)
	if err != nil {
		return checker.Invocation{}, err
	}

	if in.PyrightPath == "" {
		return checker.Invocation{}, fmt.Errorf("input required and not supplied: pyright-path")
	}

	version, err := a.checkerVersion(ctx)
	if err != nil {
		return checker.Invocation{}, err
	}

	args := []string{in.PyrightPath}
	for _, opt := range []struct{ flag, value string }{
		{"--pythonplatform", in.PythonPlatform},
		{"--pythonversion", in.PythonVersion},
		{"--typeshed-path", in.TypeshedPath},
		{"--venv-path", in.VenvPath},
		{"--project", in.Project},
	} {
		if opt.value != "" {
			args = append(args, opt.flag, opt.value)
		}
	}
	if lib {
		args = append(args, "--lib")
	}
	if warnings {
		args = append(args, "--warnings")
	}
	if verbose {
		args = append(args, "--verbose")
	}

	if in.ExtraArgs != "" {
		extra, err := shellwords.Parse(in.ExtraArgs)
		if err != nil {
			return checker.Invocation{}, fmt.Errorf("parsing extra-args: %w", err)
		}
		args = append(args, extra...)
	}

	var output checker.OutputMode = checker.StreamOutput{}
	if !noComments {
		output = checker.JSONOutput{}
		args = append(args, "--outputjson")
	}

	a.Logger.V(1).Info("resolved invocation", "pyrightVersion", version.String(), "output", output.String(), "args", args)
	return checker.Invocation{
		CheckerVersion:   version,
		Output:           output,
		WorkingDirectory: in.WorkingDirectory,
		Args:             args,
	}, nil
}

// checkerVersion resolves the version input. Empty falls back to
// pyproject.toml, then to the latest release.
func (a *Args) checkerVersion(ctx context.Context) (*semver.Version, error) {
	requested := strings.TrimSpace(a.Inputs.Version)
	if requested == "" {
		dir := a.Inputs.WorkingDirectory
		if dir == "" {
			dir = "."
		}
		v, err := pyprojectVersion(dir)
		if err != nil {
			return nil, err
		}
		requested = v
	}

	if requested == "" || requested == versionLatest {
		if a.Latest == nil {
			return nil, fmt.Errorf("no version lookup configured for %q", versionLatest)
		}
		v, err := a.Latest.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving latest pyright version: %w", err)
		}
		return v, nil
	}

	v, err := semver.NewVersion(requested)
	if err != nil {
		return nil, fmt.Errorf("invalid pyright version %q: %w", requested, err)
	}
	return v, nil
}

// boolInput follows the YAML 1.2 core schema accepted by GitHub Actions
// boolean inputs. Empty means false.
func boolInput(name, value string) (bool, error) {
	switch value {
	case "":
		return false, nil
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	return false, fmt.Errorf("input does not meet YAML 1.2 \"Core Schema\" specification: %s\n"+
		"Support boolean input list: `true | True | TRUE | false | False | FALSE`", name)
}
