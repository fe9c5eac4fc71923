// Package render turns Results into operator-facing output: a pterm table
// for terminals, or JSON for machine consumption.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/internal/util"
	"github.com/quillcheck/quill/lint"
)

// maxMessageWidth caps the table Message column so one verbose rule
// cannot wrap every row.
const maxMessageWidth = 100

// severityRank orders severities for min_alert_level filtering.
var severityRank = map[lint.Severity]int{
	lint.SeveritySuggestion: 0,
	lint.SeverityWarning:    1,
	lint.SeverityError:      2,
}

// Filter returns the issues of a flagged line at or above minLevel.
func Filter(issues []lint.Issue, minLevel lint.Severity) []lint.Issue {
	min := severityRank[minLevel]
	kept := make([]lint.Issue, 0, len(issues))
	for _, issue := range issues {
		if severityRank[issue.Severity] >= min {
			kept = append(kept, issue)
		}
	}
	return kept
}

// Results renders results in the requested format.
func Results(w io.Writer, results []*lint.Result, format string, minLevel lint.Severity) error {
	switch format {
	case "json":
		return renderJSON(w, results, minLevel)
	case "table":
		return renderTable(w, results, minLevel)
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", format)
	}
}

// finding is one row of output: a single issue anchored to its line.
type finding struct {
	File     string        `json:"file"`
	Line     int           `json:"line"`
	Col      int           `json:"col,omitempty"`
	Severity lint.Severity `json:"severity"`
	Check    string        `json:"check"`
	Message  string        `json:"message"`
}

func collect(results []*lint.Result, minLevel lint.Severity) []finding {
	var findings []finding
	for _, result := range results {
		for _, line := range result.FlaggedLines {
			for _, issue := range Filter(line.Issues, minLevel) {
				findings = append(findings, finding{
					File:     line.File,
					Line:     line.Number,
					Col:      issue.Col,
					Severity: issue.Severity,
					Check:    issue.Check,
					Message:  issue.Message,
				})
			}
		}
	}
	return findings
}

func renderJSON(w io.Writer, results []*lint.Result, minLevel lint.Severity) error {
	findings := collect(results, minLevel)
	if findings == nil {
		findings = []finding{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(findings)
}

func renderTable(w io.Writer, results []*lint.Result, minLevel lint.Severity) error {
	findings := collect(results, minLevel)
	if len(findings) == 0 {
		pterm.Success.WithWriter(w).Println("No issues found")
		return nil
	}

	rows := pterm.TableData{{"Location", "Severity", "Check", "Message"}}
	for _, f := range findings {
		location := fmt.Sprintf("%s:%d", f.File, f.Line)
		if f.Col > 0 {
			location = fmt.Sprintf("%s:%d", location, f.Col)
		}
		rows = append(rows, []string{location, severityLabel(f.Severity), f.Check, util.Truncate(f.Message, maxMessageWidth)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(rows).Render(); err != nil {
		return errors.Wrap(err, "failed to render table")
	}

	fmt.Fprintln(w)
	summary := summarize(findings)
	pterm.Info.WithWriter(w).Printfln("%d issue(s) in %d file(s): %d error(s), %d warning(s), %d suggestion(s)",
		len(findings), summary.files, summary.errors, summary.warnings, summary.suggestions)
	return nil
}

func severityLabel(severity lint.Severity) string {
	switch severity {
	case lint.SeverityError:
		return pterm.Red(string(severity))
	case lint.SeverityWarning:
		return pterm.Yellow(string(severity))
	default:
		return pterm.Gray(string(severity))
	}
}

type summary struct {
	files, errors, warnings, suggestions int
}

func summarize(findings []finding) summary {
	var s summary
	perFile := make(map[string]struct{})
	for _, f := range findings {
		perFile[f.File] = struct{}{}
		switch f.Severity {
		case lint.SeverityError:
			s.errors++
		case lint.SeverityWarning:
			s.warnings++
		default:
			s.suggestions++
		}
	}
	s.files = len(perFile)
	return s
}

// HasErrors reports whether any finding at or above minLevel is an error,
// which drives the process exit code.
func HasErrors(results []*lint.Result, minLevel lint.Severity) bool {
	for _, f := range collect(results, minLevel) {
		if f.Severity == lint.SeverityError {
			return true
		}
	}
	return false
}
