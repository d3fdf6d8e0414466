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

// Package workflow talks to the GitHub Actions runner through workflow
// commands written to stdout.
package workflow

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// AnnotationProperties locate an annotation in the repository.
// Zero values are omitted from the emitted command.
type AnnotationProperties struct {
	Title       string
	File        string
	StartLine   int
	EndLine     int
	StartColumn int
	EndColumn   int
}

// Host is the logging and annotation surface of the CI runner.
type Host interface {
	// Info writes a plain line to the job log.
	Info(line string)
	// SetFailed marks the step as failed with message.
	SetFailed(message string)

	Error(message string, props AnnotationProperties)
	Warning(message string, props AnnotationProperties)
	Notice(message string, props AnnotationProperties)
}

// Commands implements Host by writing workflow commands to a writer.
type Commands struct {
	mu       sync.Mutex
	out      io.Writer
	exitCode int
}

// NewCommands returns a Commands writing to w, or to os.Stdout when w is nil.
func NewCommands(w io.Writer) *Commands {
	if w == nil {
		w = os.Stdout
	}
	return &Commands{out: w}
}

func (c *Commands) Info(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, line)
}

func (c *Commands) SetFailed(message string) {
	c.mu.Lock()
	c.exitCode = 1
	c.mu.Unlock()
	c.issue("error", nil, message)
}

func (c *Commands) Error(message string, props AnnotationProperties) {
	c.issue("error", props.command(), message)
}

func (c *Commands) Warning(message string, props AnnotationProperties) {
	c.issue("warning", props.command(), message)
}

func (c *Commands) Notice(message string, props AnnotationProperties) {
	c.issue("notice", props.command(), message)
}

// ExitCode is 1 once SetFailed has been called, otherwise 0.
func (c *Commands) ExitCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exitCode
}

type property struct {
	key   string
	value string
}

// command returns the properties in the order the runner documents them.
func (p AnnotationProperties) command() []property {
	var props []property
	add := func(key, value string) {
		if value != "" {
			props = append(props, property{key, value})
		}
	}
	addInt := func(key string, value int) {
		if value > 0 {
			props = append(props, property{key, fmt.Sprint(value)})
		}
	}
	add("title", p.Title)
	add("file", p.File)
	addInt("line", p.StartLine)
	addInt("endLine", p.EndLine)
	addInt("col", p.StartColumn)
	addInt("endColumn", p.EndColumn)
	return props
}

func (c *Commands) issue(name string, props []property, message string) {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(name)
	for i, p := range props {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(escapeProperty(p.value))
	}
	b.WriteString("::")
	b.WriteString(escapeData(message))

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, b.String())
}

var (
	dataEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	propertyEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
	)
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propertyEscaper.Replace(s) }

var _ Host = (*Commands)(nil)

// NewStopToken returns an unguessable token for WriteVerbatim.
func NewStopToken() string {
	return uuid.NewString()
}

// WriteVerbatim writes text inside a stop-commands block so the runner does
// not interpret any of its lines as workflow commands. token must not occur
// in text.
func WriteVerbatim(w io.Writer, token, text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := fmt.Fprintf(w, "::stop-commands::%s\n%s::%s::\n", token, text, token)
	return err
}
