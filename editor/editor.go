// Package editor provides the built-in check handlers: existence,
// substitution, repetition, case, and regex. Handlers are pure functions
// over (Line, Check); a malformed rule (for example an invalid pattern)
// panics and is contained by the engine's fault isolation, degrading to
// "line unchanged by this check" with a logged warning.
package editor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/quillcheck/quill/lint"
)

// Register binds every built-in handler into the registry. Called once at
// startup; the registry is read-only afterwards.
func Register(registry *lint.Registry) {
	registry.Register("existence", Existence)
	registry.Register("substitution", Substitution)
	registry.Register("repetition", Repetition)
	registry.Register("case", Case)
	registry.Register("regex", Regex)
}

// patternCache holds compiled expressions keyed by pattern source. Checks
// are applied to every line, so compiling per line would dominate runtime.
var patternCache sync.Map

func compile(pattern string) *regexp.Regexp {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(pattern)
	patternCache.Store(pattern, re)
	return re
}

func issueAt(check lint.Check, message, match string, col int) lint.Issue {
	return lint.Issue{
		Check:    check.Name,
		Kind:     check.Kind,
		Severity: check.Severity,
		Message:  message,
		Match:    match,
		Col:      col,
	}
}

// tokenPattern builds a word-boundary alternation over the check's tokens.
func tokenPattern(tokens []string, ignoreCase bool) string {
	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = regexp.QuoteMeta(token)
	}
	pattern := `\b(?:` + strings.Join(quoted, "|") + `)\b`
	if ignoreCase {
		pattern = `(?i)` + pattern
	}
	return pattern
}

// Existence flags every occurrence of any configured token.
func Existence(line lint.Line, check lint.Check) lint.Line {
	if len(check.Tokens) == 0 {
		return line
	}
	re := compile(tokenPattern(check.Tokens, check.IgnoreCase))
	for _, loc := range re.FindAllStringIndex(line.Text, -1) {
		match := line.Text[loc[0]:loc[1]]
		line = line.WithIssue(issueAt(check,
			format(messageOr(check, "avoid %q"), match), match, loc[0]+1))
	}
	return line
}

// Substitution flags terms with a preferred replacement. Terms are applied
// in sorted order so the issues attached to a line are identical across
// invocations regardless of map iteration order.
func Substitution(line lint.Line, check lint.Check) lint.Line {
	terms := make([]string, 0, len(check.Swap))
	for term := range check.Swap {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for _, term := range terms {
		preferred := check.Swap[term]
		re := compile(tokenPattern([]string{term}, check.IgnoreCase))
		for _, loc := range re.FindAllStringIndex(line.Text, -1) {
			match := line.Text[loc[0]:loc[1]]
			line = line.WithIssue(issueAt(check,
				format(messageOr(check, "use %[2]q instead of %[1]q"), match, preferred),
				match, loc[0]+1))
		}
	}
	return line
}

// Repetition flags immediately repeated words ("the the").
func Repetition(line lint.Line, check lint.Check) lint.Line {
	words := strings.FieldsFunc(line.Text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	for i := 1; i < len(words); i++ {
		equal := words[i-1] == words[i]
		if check.IgnoreCase {
			equal = strings.EqualFold(words[i-1], words[i])
		}
		if equal {
			line = line.WithIssue(issueAt(check,
				format(messageOr(check, "%q is repeated"), words[i]), words[i], 0))
		}
	}
	return line
}

// Case flags lines that start with a lowercase letter, catching sentences
// or headings that lost their capital in an edit.
func Case(line lint.Line, check lint.Check) lint.Line {
	for _, r := range line.Text {
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.IsLetter(r) && unicode.IsLower(r) {
			line = line.WithIssue(issueAt(check,
				messageOr(check, "line should start with a capital letter"), "", 1))
		}
		break
	}
	return line
}

// Regex flags every match of an arbitrary pattern. An invalid pattern
// panics in compile and is contained by the engine.
func Regex(line lint.Line, check lint.Check) lint.Line {
	pattern := check.Pattern
	if check.IgnoreCase {
		pattern = `(?i)` + pattern
	}
	re := compile(pattern)
	for _, loc := range re.FindAllStringIndex(line.Text, -1) {
		match := line.Text[loc[0]:loc[1]]
		line = line.WithIssue(issueAt(check,
			format(messageOr(check, "%q matches a discouraged pattern"), match),
			match, loc[0]+1))
	}
	return line
}

// messageOr returns the check's configured message, or a default carrying
// the same fmt verbs.
func messageOr(check lint.Check, fallback string) string {
	if check.Message != "" {
		return check.Message
	}
	return fallback
}

// format substitutes the match arguments only when the message carries a
// real fmt verb; a plain message passes through untouched, including one
// with a literal percent sign ("avoid 100% claims").
func format(message string, args ...interface{}) string {
	if !hasFormatVerb(message) {
		return message
	}
	return fmt.Sprintf(message, args...)
}

// hasFormatVerb reports whether the message contains a fmt verb: a '%'
// followed by optional index, flag, width, and precision characters and a
// terminating letter. "%%" is a literal percent. The space flag is
// deliberately not recognized, so prose like "avoid 100% claims" stays a
// plain message rather than being parsed as "% c".
func hasFormatVerb(message string) bool {
	for i := 0; i < len(message); i++ {
		if message[i] != '%' {
			continue
		}
		i++
		if i < len(message) && message[i] == '%' {
			continue
		}
		for i < len(message) && strings.ContainsRune("[]#+-.*0123456789", rune(message[i])) {
			i++
		}
		if i < len(message) {
			c := message[i]
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				return true
			}
		}
	}
	return false
}
