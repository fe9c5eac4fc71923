// Package config loads quill configuration: which styles apply, where the
// result cache lives, which files to ignore, and how output is rendered.
//
// The lint engine never reads configuration fields; it only fingerprints
// the canonical serialization, so any config edit invalidates cached
// results for every file.
package config

import (
	"encoding/json"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/quillcheck/quill/errors"
)

// Config is the merged quill configuration.
type Config struct {
	// StylesPath is the directory holding style packages.
	StylesPath string `mapstructure:"styles_path" json:"styles_path"`

	// Styles names the style packages applied to every document, in order.
	// Order matters: a later style's checks see lines as annotated by an
	// earlier style's checks.
	Styles []string `mapstructure:"styles" json:"styles"`

	// MinAlertLevel filters findings below this severity from output.
	MinAlertLevel string `mapstructure:"min_alert_level" json:"min_alert_level"`

	// Extensions lists the file extensions that are linted.
	Extensions []string `mapstructure:"extensions" json:"extensions"`

	// Ignore holds doublestar glob patterns excluded from discovery.
	Ignore []string `mapstructure:"ignore" json:"ignore"`

	// Output selects the rendering mode: table or json.
	Output string `mapstructure:"output" json:"output"`

	// Parallel enables line-level parallelism within each file.
	Parallel bool `mapstructure:"parallel" json:"parallel"`

	Cache CacheConfig `mapstructure:"cache" json:"cache"`
	Watch WatchConfig `mapstructure:"watch" json:"watch"`
}

// CacheConfig controls the persistent result cache.
type CacheConfig struct {
	// Path is the SQLite database location.
	Path string `mapstructure:"path" json:"path"`

	// Disabled turns persistence off entirely; every run recomputes.
	Disabled bool `mapstructure:"disabled" json:"disabled"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// DebounceMS coalesces rapid write events for the same file.
	DebounceMS int `mapstructure:"debounce_ms" json:"debounce_ms"`

	// RatePerSecond caps how often one file is re-linted.
	RatePerSecond float64 `mapstructure:"rate_per_second" json:"rate_per_second"`

	// Burst is the rate limiter burst size.
	Burst int `mapstructure:"burst" json:"burst"`
}

// Raw returns the canonical JSON serialization of the config, used both for
// fingerprinting and for embedding into cached Results. encoding/json sorts
// map keys, so structurally equal configs serialize identically.
func (c *Config) Raw() (json.RawMessage, error) {
	encoded, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize config")
	}
	return encoded, nil
}

// Validate rejects configurations quill cannot act on.
func (c *Config) Validate() error {
	if len(c.Styles) == 0 {
		return errors.WithHint(
			errors.Wrap(errors.ErrInvalidConfig, "no styles configured"),
			"add at least one style to the 'styles' list in quill.toml",
		)
	}
	switch c.Output {
	case "table", "json":
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", c.Output)
	}
	switch c.MinAlertLevel {
	case "suggestion", "warning", "error":
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown min_alert_level %q", c.MinAlertLevel)
	}
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Wrapf(errors.ErrInvalidConfig, "invalid ignore pattern %q", pattern)
		}
	}
	return nil
}
