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

package diagnostics

import (
	"encoding/json"
	"fmt"
)

// Severity values emitted by pyright.
const (
	SeverityError       = "error"
	SeverityWarning     = "warning"
	SeverityInformation = "information"
)

// Position is a zero-based line/character offset as emitted by pyright.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is a single entry of the report's generalDiagnostics list.
type Diagnostic struct {
	File     string `json:"file"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Range    *Range `json:"range,omitempty"`
	Rule     string `json:"rule,omitempty"`
}

// Summary is the trailing counts section of the report.
type Summary struct {
	FilesAnalyzed    int     `json:"filesAnalyzed"`
	ErrorCount       int     `json:"errorCount"`
	WarningCount     int     `json:"warningCount"`
	InformationCount int     `json:"informationCount"`
	TimeInSec        float64 `json:"timeInSec"`
}

// Report is the document pyright writes with --outputjson.
type Report struct {
	Version     string       `json:"version"`
	Time        string       `json:"time"`
	Diagnostics []Diagnostic `json:"generalDiagnostics"`
	Summary     *Summary     `json:"summary,omitempty"`
}

// wireReport mirrors Report with pointers so missing keys can be told
// apart from zero values.
type wireReport struct {
	Version     string            `json:"version"`
	Time        string            `json:"time"`
	Diagnostics *[]wireDiagnostic `json:"generalDiagnostics"`
	Summary     *Summary          `json:"summary"`
}

type wireDiagnostic struct {
	File     *string `json:"file"`
	Severity *string `json:"severity"`
	Message  *string `json:"message"`
	Range    *Range  `json:"range"`
	Rule     string  `json:"rule"`
}

// ParseReport decodes pyright's JSON output. Malformed JSON, a missing
// generalDiagnostics list, or a diagnostic without file, severity or
// message is an error.
func ParseReport(data []byte) (*Report, error) {
	var wire wireReport
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing pyright output: %w", err)
	}
	if wire.Diagnostics == nil {
		return nil, fmt.Errorf("parsing pyright output: missing %q", "generalDiagnostics")
	}

	report := &Report{
		Version:     wire.Version,
		Time:        wire.Time,
		Summary:     wire.Summary,
		Diagnostics: make([]Diagnostic, 0, len(*wire.Diagnostics)),
	}
	for i, d := range *wire.Diagnostics {
		switch {
		case d.File == nil:
			return nil, fmt.Errorf("parsing pyright output: generalDiagnostics[%d]: missing %q", i, "file")
		case d.Severity == nil:
			return nil, fmt.Errorf("parsing pyright output: generalDiagnostics[%d]: missing %q", i, "severity")
		case d.Message == nil:
			return nil, fmt.Errorf("parsing pyright output: generalDiagnostics[%d]: missing %q", i, "message")
		}
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			File:     *d.File,
			Severity: *d.Severity,
			Message:  *d.Message,
			Range:    d.Range,
			Rule:     d.Rule,
		})
	}
	return report, nil
}
