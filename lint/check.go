package lint

// Check is an immutable rule definition loaded once per run from a style
// file. The engine treats it as an opaque value: Kind selects the handler,
// everything else is interpreted by the handler alone. The full struct is
// covered by the check-set fingerprint, so editing any rule parameter
// invalidates cached results.
type Check struct {
	// Name identifies the rule to the operator, conventionally
	// "style.RuleFile".
	Name string `json:"name"`

	// Kind selects the registered handler: existence, substitution,
	// repetition, case, regex.
	Kind string `json:"kind"`

	Severity Severity `json:"severity"`

	// Message is the finding text. Handlers substitute the match (and for
	// substitution the suggested replacement) via fmt verbs.
	Message string `json:"message"`

	// Tokens are the terms an existence check flags.
	Tokens []string `json:"tokens,omitempty"`

	// Swap maps flagged terms to their preferred replacements.
	Swap map[string]string `json:"swap,omitempty"`

	// Pattern is the expression for regex checks.
	Pattern string `json:"pattern,omitempty"`

	// IgnoreCase makes token and pattern matching case-insensitive.
	IgnoreCase bool `json:"ignorecase,omitempty"`
}
