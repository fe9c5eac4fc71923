// Package lint implements the quill check engine: fault-isolated dispatch of
// checks over document lines, and the incremental result cache that decides
// whether previous work can be reused in whole, in part, or not at all.
//
// The package has no mutable package state. An Engine is safe for concurrent
// use across files; within a file, lines may be processed in parallel because
// each line's check fold is self-contained.
package lint

// UnanchoredLine is the reserved line number meaning "could not be
// re-anchored onto the current file". Lines carrying it exist only inside
// the incremental merge; they are always filtered before a Result is
// surfaced to a caller.
const UnanchoredLine = 0

// Severity classifies how strongly a finding should be surfaced.
type Severity string

const (
	SeveritySuggestion Severity = "suggestion"
	SeverityWarning    Severity = "warning"
	SeverityError      Severity = "error"
)

// Issue is one finding attached to a line by a check.
type Issue struct {
	Check    string   `json:"check"`
	Kind     string   `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Match    string   `json:"match,omitempty"`
	Col      int      `json:"col,omitempty"` // 1-based column of the match start
}

// Line is one line of checked text. Values are immutable by convention:
// check handlers return a new Line via WithIssue and never mutate in place,
// which is what makes the per-line fold safe to run in parallel.
type Line struct {
	File   string  `json:"file"`
	Number int     `json:"number"`
	Text   string  `json:"text"`
	Issues []Issue `json:"issues,omitempty"`
}

// HasIssue reports whether any check attached a finding to this line.
func (l Line) HasIssue() bool {
	return len(l.Issues) > 0
}

// WithIssue returns a copy of the line with the issue appended. The issue
// slice is copied so the receiver is never aliased by the result.
func (l Line) WithIssue(issue Issue) Line {
	issues := make([]Issue, len(l.Issues), len(l.Issues)+1)
	copy(issues, l.Issues)
	l.Issues = append(issues, issue)
	return l
}

// WithNumber returns a copy of the line re-anchored to a new line number.
func (l Line) WithNumber(number int) Line {
	l.Number = number
	return l
}

// Texts extracts the ordered text contents of a line slice.
func Texts(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}
	return texts
}

// NumberLines builds the Line values for a file from its raw text lines,
// numbering from 1.
func NumberLines(file string, texts []string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{File: file, Number: i + 1, Text: text}
	}
	return lines
}
