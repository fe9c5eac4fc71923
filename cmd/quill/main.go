package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillcheck/quill/cmd/quill/commands"
	"github.com/quillcheck/quill/logger"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill - incremental prose and style checker",
	Long: `quill - incremental prose and style checker.

quill applies configurable style rules to the lines of your documents and
reports flagged lines. Results are cached per file: unchanged files return
instantly, and edited files only reprocess the lines that changed.

Available commands:
  lint   - Check documents against the configured styles
  watch  - Re-lint documents as they change on disk
  styles - Manage style packages
  cache  - Inspect or clear the result cache

Examples:
  quill lint docs/             # Lint every document under docs/
  quill lint --no-cache README.md
  quill watch docs/            # Keep linting on every save
  quill styles add github.com/acme/write-good
  quill cache stats`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit diagnostics as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a quill.toml (skips the config merge chain)")

	rootCmd.AddCommand(commands.LintCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.StylesCmd)
	rootCmd.AddCommand(commands.CacheCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
