// Package style loads check definitions from style packages: directories of
// YAML rule files, optionally carrying a TOML manifest with a version
// constraint on quill itself. Styles can live locally or be fetched from
// remote sources.
package style

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/lint"
)

// rule is the YAML shape of one check definition.
type rule struct {
	Kind       string            `yaml:"kind"`
	Message    string            `yaml:"message"`
	Level      string            `yaml:"level"`
	Tokens     []string          `yaml:"tokens"`
	Swap       map[string]string `yaml:"swap"`
	Pattern    string            `yaml:"pattern"`
	IgnoreCase bool              `yaml:"ignorecase"`
}

// Load reads the named styles from stylesPath and returns their checks in
// configuration order: styles in the order given, rules within a style in
// file-name order. Order is preserved exactly because check ordering is
// semantically significant to the engine's per-line fold.
func Load(stylesPath string, styles []string) ([]lint.Check, error) {
	var checks []lint.Check
	for _, name := range styles {
		styleChecks, err := loadStyle(stylesPath, name)
		if err != nil {
			return nil, err
		}
		checks = append(checks, styleChecks...)
	}
	return checks, nil
}

func loadStyle(stylesPath, name string) ([]lint.Check, error) {
	dir := filepath.Join(stylesPath, name)
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrNotFound, "style %q not found in %s", name, stylesPath),
			"fetch it with `quill styles add <source>` or fix the 'styles' list",
		)
	}

	if err := checkManifest(dir, name); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read style %q", name)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yml" || ext == ".yaml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	checks := make([]lint.Check, 0, len(files))
	for _, file := range files {
		check, err := loadRule(dir, name, file)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func loadRule(dir, styleName, file string) (lint.Check, error) {
	raw, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return lint.Check{}, errors.Wrapf(err, "failed to read rule %s/%s", styleName, file)
	}

	var r rule
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return lint.Check{}, errors.Wrapf(errors.ErrInvalidConfig,
			"rule %s/%s is not valid YAML: %v", styleName, file, err)
	}
	if r.Kind == "" {
		return lint.Check{}, errors.Wrapf(errors.ErrInvalidConfig,
			"rule %s/%s is missing 'kind'", styleName, file)
	}

	base := strings.TrimSuffix(file, filepath.Ext(file))
	return lint.Check{
		Name:       styleName + "." + base,
		Kind:       r.Kind,
		Severity:   severity(r.Level),
		Message:    r.Message,
		Tokens:     r.Tokens,
		Swap:       r.Swap,
		Pattern:    r.Pattern,
		IgnoreCase: r.IgnoreCase,
	}, nil
}

func severity(level string) lint.Severity {
	switch level {
	case "error":
		return lint.SeverityError
	case "warning":
		return lint.SeverityWarning
	default:
		return lint.SeveritySuggestion
	}
}
