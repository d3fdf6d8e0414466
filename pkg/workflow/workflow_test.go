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

package workflow

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsInfo(t *testing.T) {
	var buf bytes.Buffer
	c := NewCommands(&buf)

	c.Info("pyright 1.1.240, node v16.14.2, pyright-action dev")
	c.Info("/path/to/node index.js --outputjson")

	assert.Equal(t, "pyright 1.1.240, node v16.14.2, pyright-action dev\n/path/to/node index.js --outputjson\n", buf.String())
	assert.Equal(t, 0, c.ExitCode())
}

func TestCommandsSetFailed(t *testing.T) {
	var buf bytes.Buffer
	c := NewCommands(&buf)

	c.SetFailed("Exit code 1")

	assert.Equal(t, "::error::Exit code 1\n", buf.String())
	assert.Equal(t, 1, c.ExitCode())
}

func TestCommandsAnnotations(t *testing.T) {
	tests := []struct {
		name string
		emit func(c *Commands)
		want string
	}{
		{
			name: "error with full location",
			emit: func(c *Commands) {
				c.Error("bad type (reportGeneralTypeIssues)", AnnotationProperties{
					File: "src/app.py", StartLine: 3, EndLine: 3, StartColumn: 5, EndColumn: 9,
				})
			},
			want: "::error file=src/app.py,line=3,endLine=3,col=5,endColumn=9::bad type (reportGeneralTypeIssues)\n",
		},
		{
			name: "warning without location",
			emit: func(c *Commands) {
				c.Warning("import cycle", AnnotationProperties{File: "a.py"})
			},
			want: "::warning file=a.py::import cycle\n",
		},
		{
			name: "notice with no properties",
			emit: func(c *Commands) {
				c.Notice("hello", AnnotationProperties{})
			},
			want: "::notice::hello\n",
		},
		{
			name: "escapes message and properties",
			emit: func(c *Commands) {
				c.Error("50% done\nnext", AnnotationProperties{File: "C:\\a,b.py", Title: "x:y"})
			},
			want: "::error title=x%3Ay,file=C%3A\\a%2Cb.py::50%25 done%0Anext\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewCommands(&buf)
			tt.emit(c)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, 0, c.ExitCode(), "annotations must not fail the step")
		})
	}
}

func TestWriteVerbatim(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteVerbatim(&buf, "tok", "a.py:1:1 - error: bad\n::error::injected"))

	assert.Equal(t, "::stop-commands::tok\na.py:1:1 - error: bad\n::error::injected\n::tok::\n", buf.String())
}

func TestNewStopTokenIsUnique(t *testing.T) {
	a, b := NewStopToken(), NewStopToken()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
