package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillcheck/quill/lint"
)

func line(text string) lint.Line {
	return lint.Line{File: "doc.md", Number: 1, Text: text}
}

func TestExistence(t *testing.T) {
	check := lint.Check{
		Name:       "style.Weasel",
		Kind:       "existence",
		Severity:   lint.SeverityWarning,
		Tokens:     []string{"very", "really"},
		IgnoreCase: true,
	}

	out := Existence(line("This is Very good, really good"), check)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, "Very", out.Issues[0].Match)
	assert.Equal(t, 9, out.Issues[0].Col)
	assert.Equal(t, "really", out.Issues[1].Match)

	clean := Existence(line("every reality check"), check)
	assert.False(t, clean.HasIssue(), "substrings inside words must not match")
}

func TestExistenceCaseSensitive(t *testing.T) {
	check := lint.Check{Name: "s.X", Kind: "existence", Tokens: []string{"very"}}
	assert.False(t, Existence(line("Very loud"), check).HasIssue())
	assert.True(t, Existence(line("very loud"), check).HasIssue())
}

func TestSubstitution(t *testing.T) {
	check := lint.Check{
		Name:       "style.Terms",
		Kind:       "substitution",
		Severity:   lint.SeveritySuggestion,
		Swap:       map[string]string{"utilize": "use"},
		IgnoreCase: true,
	}

	out := Substitution(line("We utilize the cache"), check)
	require.Len(t, out.Issues, 1)
	assert.Contains(t, out.Issues[0].Message, `"use"`)
	assert.Contains(t, out.Issues[0].Message, `"utilize"`)
}

func TestSubstitutionIssueOrderIsDeterministic(t *testing.T) {
	// Swap is a map; the handler must not leak map iteration order into
	// the issue sequence, or value-equal lines stop comparing equal.
	check := lint.Check{
		Name: "style.Terms",
		Kind: "substitution",
		Swap: map[string]string{
			"aardvark": "a", "badger": "b", "cheetah": "c", "dingo": "d",
			"echidna": "e", "ferret": "f", "gopher": "g", "heron": "h",
		},
	}
	text := "heron gopher ferret echidna dingo cheetah badger aardvark"

	first := Substitution(line(text), check)
	require.Len(t, first.Issues, 8)
	for i := 1; i < len(first.Issues); i++ {
		assert.LessOrEqual(t, first.Issues[i-1].Match, first.Issues[i].Match,
			"issues must follow sorted term order")
	}
	for i := 0; i < 200; i++ {
		again := Substitution(line(text), check)
		require.Equal(t, first.Issues, again.Issues, "issue order varied between invocations")
	}
}

func TestRepetition(t *testing.T) {
	check := lint.Check{Name: "style.Repetition", Kind: "repetition", IgnoreCase: true}

	out := Repetition(line("The the cat sat"), check)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, "the", out.Issues[0].Match)

	// Punctuation between words still counts as adjacency of words.
	out = Repetition(line("stop, stop right there"), check)
	assert.True(t, out.HasIssue())

	assert.False(t, Repetition(line("the cat the mat"), check).HasIssue())
}

func TestRepetitionCaseSensitivity(t *testing.T) {
	check := lint.Check{Name: "style.Repetition", Kind: "repetition"}
	assert.False(t, Repetition(line("The the cat"), check).HasIssue(),
		"case-sensitive repetition should not flag differing case")
}

func TestCase(t *testing.T) {
	check := lint.Check{Name: "style.Sentence", Kind: "case"}

	assert.True(t, Case(line("lowercase start"), check).HasIssue())
	assert.False(t, Case(line("Uppercase start"), check).HasIssue())
	assert.False(t, Case(line("  42 items"), check).HasIssue(),
		"digits are not a casing problem")
	assert.False(t, Case(line(""), check).HasIssue())
}

func TestRegex(t *testing.T) {
	check := lint.Check{
		Name:    "style.Spacing",
		Kind:    "regex",
		Pattern: `\.  +`,
		Message: "avoid double spaces after a period",
	}

	out := Regex(line("End.  Start"), check)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, "avoid double spaces after a period", out.Issues[0].Message)
}

func TestRegexInvalidPatternPanics(t *testing.T) {
	// Fault isolation lives in the engine; the handler's contract is to
	// panic on malformed rules.
	check := lint.Check{Name: "style.Bad", Kind: "regex", Pattern: `([`}
	assert.Panics(t, func() { Regex(line("anything"), check) })
}

func TestMessageWithLiteralPercentPassesThrough(t *testing.T) {
	check := lint.Check{
		Name:    "style.Claims",
		Kind:    "existence",
		Tokens:  []string{"guaranteed"},
		Message: "avoid 100% claims",
	}
	out := Existence(line("results guaranteed"), check)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, "avoid 100% claims", out.Issues[0].Message)
}

func TestHasFormatVerb(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"avoid %q", true},
		{"use %[2]q instead of %[1]q", true},
		{"avoid 100% claims", false},
		{"drop by 50%", false},
		{"literal %% stays literal", false},
		{"no percent at all", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hasFormatVerb(tt.message), tt.message)
	}
}

func TestHandlersReturnNewValues(t *testing.T) {
	check := lint.Check{Name: "s.X", Kind: "existence", Tokens: []string{"flag"}}
	input := line("flag me")
	out := Existence(input, check)
	require.True(t, out.HasIssue())
	assert.False(t, input.HasIssue(), "input line must be unchanged")
}

func TestRegisterBindsAllKinds(t *testing.T) {
	registry := lint.NewRegistry()
	Register(registry)
	assert.Equal(t, []string{"case", "existence", "regex", "repetition", "substitution"},
		registry.Kinds())
}
