/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NissesSenap/pyright-action/pkg/version"
)

// CLI is the root command tree.
type CLI struct {
	Debug bool `help:"Enable debug logging" env:"RUNNER_DEBUG"`

	Run     RunCmd     `cmd:"" default:"withargs" help:"Run pyright and report its diagnostics"`
	Version VersionCmd `cmd:"" help:"Print the action version"`

	exitCode int `kong:"-"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(_ *CLI) error {
	fmt.Println(version.Version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pyright-action"),
		kong.Description("Run pyright in CI and surface its diagnostics as annotations."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "pyright-action: %v\n", err)
		os.Exit(1)
	}
	os.Exit(cli.exitCode)
}

// newLogger builds the zap-backed logr.Logger. Logs go to stderr so they
// never interleave with workflow commands on stdout.
func newLogger(debug bool) (logr.Logger, func(), error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("building logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}
