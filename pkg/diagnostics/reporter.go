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

// Package diagnostics turns pyright's JSON report into workflow annotations.
package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/logr"

	"github.com/NissesSenap/pyright-action/pkg/workflow"
)

// Annotator is the part of the host that accepts annotations.
type Annotator interface {
	Error(message string, props workflow.AnnotationProperties)
	Warning(message string, props workflow.AnnotationProperties)
	Notice(message string, props workflow.AnnotationProperties)
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgBlue)
)

// Reporter emits one annotation per diagnostic.
type Reporter struct {
	host      Annotator
	out       io.Writer
	stopToken func() string
	logger    logr.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithOutput sets where the human readable listing is written.
func WithOutput(w io.Writer) Option {
	return func(r *Reporter) { r.out = w }
}

// WithStopToken sets the token generator used to fence the listing off
// from workflow command processing.
func WithStopToken(f func() string) Option {
	return func(r *Reporter) { r.stopToken = f }
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(r *Reporter) { r.logger = l }
}

// NewReporter creates a Reporter annotating through host.
func NewReporter(host Annotator, opts ...Option) *Reporter {
	r := &Reporter{
		host:      host,
		out:       os.Stdout,
		stopToken: workflow.NewStopToken,
		logger:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report parses stdout and annotates every diagnostic in order. Nothing is
// emitted unless the whole document parses.
func (r *Reporter) Report(stdout string) error {
	report, err := ParseReport([]byte(stdout))
	if err != nil {
		return err
	}

	for _, d := range report.Diagnostics {
		message := annotationMessage(d)
		props := annotationProperties(d)
		switch d.Severity {
		case SeverityError:
			r.host.Error(message, props)
		case SeverityWarning:
			r.host.Warning(message, props)
		case SeverityInformation:
			r.host.Notice(message, props)
		default:
			r.logger.V(1).Info("unknown severity, reporting as notice", "severity", d.Severity, "file", d.File)
			r.host.Notice(message, props)
		}
	}

	// Messages are checker output and may contain lines that look like
	// workflow commands.
	if err := workflow.WriteVerbatim(r.out, r.stopToken(), listing(report)); err != nil {
		r.logger.Error(err, "writing diagnostics listing")
	}
	r.logger.V(1).Info("reported diagnostics", "count", len(report.Diagnostics), "pyrightVersion", report.Version)
	return nil
}

func annotationMessage(d Diagnostic) string {
	if d.Rule == "" {
		return d.Message
	}
	return fmt.Sprintf("%s (%s)", d.Message, d.Rule)
}

func annotationProperties(d Diagnostic) workflow.AnnotationProperties {
	props := workflow.AnnotationProperties{File: d.File}
	if d.Range != nil {
		props.StartLine = d.Range.Start.Line + 1
		props.StartColumn = d.Range.Start.Character + 1
		props.EndLine = d.Range.End.Line + 1
		props.EndColumn = d.Range.End.Character + 1
	}
	return props
}

// listing renders pyright-style lines plus a count summary.
func listing(report *Report) string {
	var b bytes.Buffer
	var errors, warnings, infos int
	for _, d := range report.Diagnostics {
		loc := d.File
		if d.Range != nil {
			loc = fmt.Sprintf("%s:%d:%d", d.File, d.Range.Start.Line+1, d.Range.Start.Character+1)
		}
		var sev string
		switch d.Severity {
		case SeverityError:
			errors++
			sev = errorColor.Sprint(d.Severity)
		case SeverityWarning:
			warnings++
			sev = warningColor.Sprint(d.Severity)
		default:
			infos++
			sev = infoColor.Sprint(d.Severity)
		}
		_, _ = fmt.Fprintf(&b, "%s - %s: %s\n", loc, sev, annotationMessage(d))
	}

	// Prefer pyright's own counts; they include diagnostics it chose not to list.
	if s := report.Summary; s != nil {
		errors, warnings, infos = s.ErrorCount, s.WarningCount, s.InformationCount
	}
	_, _ = fmt.Fprintf(&b, "%s, %s, %s\n",
		errorColor.Sprint(plural(errors, "error")),
		warningColor.Sprint(plural(warnings, "warning")),
		infoColor.Sprint(plural(infos, "information")))
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
