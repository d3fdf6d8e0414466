package main

import (
	"context"
	"os"

	"github.com/go-logr/logr"

	"github.com/NissesSenap/pyright-action/pkg/action"
	"github.com/NissesSenap/pyright-action/pkg/checker"
	"github.com/NissesSenap/pyright-action/pkg/diagnostics"
	"github.com/NissesSenap/pyright-action/pkg/resolve"
	"github.com/NissesSenap/pyright-action/pkg/workflow"
)

// RunCmd maps the action inputs. GitHub exposes input "foo-bar" as
// INPUT_FOO-BAR. Booleans stay strings here and are validated during
// resolution so bad values fail the step like any other input error.
type RunCmd struct {
	WorkingDirectory string `help:"Directory to run pyright in" env:"INPUT_WORKING-DIRECTORY"`
	PyrightVersion   string `help:"Pyright version: semver, latest, or empty for pyproject.toml/latest" env:"INPUT_VERSION"`
	PyrightPath      string `help:"Path to the pyright entry point (index.js)" env:"INPUT_PYRIGHT-PATH"`
	NodePath         string `help:"Node executable (default: node on PATH)" env:"INPUT_NODE-PATH"`
	PythonPlatform   string `help:"Analyze for a specific platform" env:"INPUT_PYTHON-PLATFORM"`
	PythonVersion    string `help:"Analyze for a specific Python version" env:"INPUT_PYTHON-VERSION"`
	TypeshedPath     string `help:"Use typeshed type stubs at this location" env:"INPUT_TYPESHED-PATH"`
	VenvPath         string `help:"Directory that contains virtual environments" env:"INPUT_VENV-PATH"`
	Project          string `help:"Use the configuration file at this location" env:"INPUT_PROJECT"`
	Lib              string `help:"Use library code to infer types when stubs are missing" env:"INPUT_LIB"`
	Warnings         string `help:"Use exit code of 1 if warnings are reported" env:"INPUT_WARNINGS"`
	Verbose          string `help:"Emit verbose diagnostics" env:"INPUT_VERBOSE"`
	ExtraArgs        string `help:"Extra arguments, split like a shell would" env:"INPUT_EXTRA-ARGS"`
	NoComments       string `help:"Disable annotations and stream pyright output directly" env:"INPUT_NO-COMMENTS"`
	GithubToken      string `help:"Token for the latest-version lookup" env:"INPUT_GITHUB-TOKEN,GITHUB_TOKEN"`
	GithubAPIURL     string `name:"github-api-url" help:"GitHub API URL" default:"https://api.github.com" env:"GITHUB_API_URL"`
}

func (c *RunCmd) Run(cli *CLI) error {
	logger, sync, err := newLogger(cli.Debug)
	if err != nil {
		return err
	}
	defer sync()

	host := workflow.NewCommands(os.Stdout)
	ctrl := c.controller(host, logger)

	// The checker is never cancelled: the step waits for it to exit.
	ctrl.Main(context.Background())

	cli.exitCode = host.ExitCode()
	return nil
}

func (c *RunCmd) controller(host *workflow.Commands, logger logr.Logger) *action.Controller {
	executor := &checker.OSExecutor{}

	return &action.Controller{
		Runtime: &resolve.Node{
			Path:   c.NodePath,
			Exec:   executor,
			Logger: logger.WithName("runtime"),
		},
		Invocation: &resolve.Args{
			Inputs: c.inputs(),
			Latest: &lazyRelease{token: c.GithubToken, apiURL: c.GithubAPIURL},
			Logger: logger.WithName("args"),
		},
		Runner: checker.NewOrchestrator(executor, host,
			checker.WithLogger(logger.WithName("checker")),
		),
		Reporter: diagnostics.NewReporter(host,
			diagnostics.WithOutput(os.Stdout),
			diagnostics.WithLogger(logger.WithName("diagnostics")),
		),
		Host:   host,
		Logger: logger.WithName("controller"),
	}
}

func (c *RunCmd) inputs() resolve.Inputs {
	return resolve.Inputs{
		WorkingDirectory: c.WorkingDirectory,
		Version:          c.PyrightVersion,
		PyrightPath:      c.PyrightPath,
		PythonPlatform:   c.PythonPlatform,
		PythonVersion:    c.PythonVersion,
		TypeshedPath:     c.TypeshedPath,
		VenvPath:         c.VenvPath,
		Project:          c.Project,
		Lib:              c.Lib,
		Warnings:         c.Warnings,
		Verbose:          c.Verbose,
		ExtraArgs:        c.ExtraArgs,
		NoComments:       c.NoComments,
	}
}
