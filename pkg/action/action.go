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

// Package action sequences one checker run and reports its outcome to the
// CI host.
package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/NissesSenap/pyright-action/pkg/checker"
)

const unknownErrorMessage = "unknown error"

// RuntimeResolver supplies the executable used to run the checker.
type RuntimeResolver interface {
	Runtime(ctx context.Context) (checker.Runtime, error)
}

// InvocationResolver supplies the checker arguments for this run.
type InvocationResolver interface {
	Invocation(ctx context.Context) (checker.Invocation, error)
}

// Runner launches the checker for a resolved plan.
type Runner interface {
	Run(ctx context.Context, plan checker.Plan) (*checker.Result, error)
}

// DiagnosticReporter annotates captured checker output.
type DiagnosticReporter interface {
	Report(stdout string) error
}

// FailureReporter receives the single failure signal of a failed run.
type FailureReporter interface {
	SetFailed(message string)
}

// Controller runs the checker once and converts every failure into exactly
// one SetFailed call.
type Controller struct {
	Runtime    RuntimeResolver
	Invocation InvocationResolver
	Runner     Runner
	Reporter   DiagnosticReporter
	Host       FailureReporter
	Logger     logr.Logger
}

// Main performs the run. It never returns an error or panics; the outcome
// is visible only through Host.
func (c *Controller) Main(ctx context.Context) {
	if msg, failed := c.run(ctx); failed {
		c.Host.SetFailed(msg)
	}
}

// run returns the failure message and whether the run failed.
func (c *Controller) run(ctx context.Context) (msg string, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Error(fmt.Errorf("panic: %v", r), "run panicked")
			msg, failed = panicMessage(r), true
		}
	}()

	runtime, err := c.Runtime.Runtime(ctx)
	if err != nil {
		return uncaught(err), true
	}

	inv, err := c.Invocation.Invocation(ctx)
	if err != nil {
		return uncaught(err), true
	}

	res, err := c.Runner.Run(ctx, checker.Plan{Runtime: runtime, Invocation: inv})
	if err != nil {
		return uncaught(err), true
	}

	if res.ExitCode == nil {
		return "Exit signal " + res.Signal, true
	}

	// Diagnostics are annotated whatever the exit status; pyright exits
	// non-zero precisely when it has errors to report.
	if res.Stdout != nil && strings.TrimSpace(*res.Stdout) != "" {
		if err := c.Reporter.Report(*res.Stdout); err != nil {
			return uncaught(err), true
		}
	} else if res.Stdout != nil {
		c.Logger.Info("checker produced no output to annotate", "exitCode", *res.ExitCode)
	}

	if *res.ExitCode != 0 {
		return fmt.Sprintf("Exit code %d", *res.ExitCode), true
	}
	return "", false
}

func uncaught(err error) string {
	if err == nil || err.Error() == "" {
		return unknownErrorMessage
	}
	return err.Error()
}

func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		return uncaught(v)
	case string:
		if v != "" {
			return v
		}
	case fmt.Stringer:
		if s := v.String(); s != "" {
			return s
		}
	}
	return unknownErrorMessage
}
