package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quillcheck/quill/discover"
	"github.com/quillcheck/quill/lint"
	"github.com/quillcheck/quill/logger"
	"github.com/quillcheck/quill/render"
)

var (
	lintNoCache bool
	lintOutput  string
)

// LintCmd represents the lint command
var LintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Check documents against the configured styles",
	Long: `Check documents against the configured styles.

Paths may be files or directories; directories are walked recursively,
honoring the configured extensions and ignore patterns. With no paths the
current directory is linted.

Results are cached per file. An unchanged file returns its previous result
without running any checks; an edited file reprocesses only the lines whose
text changed.

Examples:
  quill lint                      # Lint the current directory
  quill lint docs/ README.md      # Lint a directory and a file
  quill lint --no-cache docs/     # Force full recomputation
  quill lint --output json docs/  # Machine-readable findings`,

	RunE: runLintCommand,
}

func init() {
	LintCmd.Flags().BoolVar(&lintNoCache, "no-cache", false, "Bypass the result cache and recompute everything")
	LintCmd.Flags().StringVarP(&lintOutput, "output", "o", "", "Output format (table/json), overrides config")
}

func runLintCommand(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if lintOutput != "" {
		s.cfg.Output = lintOutput
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files, err := discover.Files(roots, s.cfg.Extensions, s.cfg.Ignore, logger.Logger)
	if err != nil {
		return err
	}
	logger.Infow("linting", "files", len(files), "checks", len(s.checks))

	r, err := s.runner(lintNoCache)
	if err != nil {
		return err
	}
	results, lintErr := r.LintFiles(files)

	minLevel := lint.Severity(s.cfg.MinAlertLevel)
	if err := render.Results(os.Stdout, results, s.cfg.Output, minLevel); err != nil {
		return err
	}
	if lintErr != nil {
		return lintErr
	}
	if render.HasErrors(results, minLevel) {
		os.Exit(1)
	}
	return nil
}
