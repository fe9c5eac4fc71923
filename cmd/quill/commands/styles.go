package commands

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/logger"
	"github.com/quillcheck/quill/style"
)

// StylesCmd represents the styles command
var StylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Manage style packages",
	Long: `Manage style packages.

Styles are directories of YAML rule files under the configured styles path.
Remote styles can be fetched from git URLs, GitHub shorthand, plain HTTP,
or archives.

Examples:
  quill styles ls
  quill styles add github.com/acme/write-good
  quill styles add https://example.com/styles/house.tar.gz`,
}

var stylesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List installed style packages",
	RunE:  runStylesLs,
}

var stylesAddCmd = &cobra.Command{
	Use:   "add <source>",
	Short: "Fetch and install a style package",
	Args:  cobra.ExactArgs(1),
	RunE:  runStylesAdd,
}

func init() {
	StylesCmd.AddCommand(stylesLsCmd)
	StylesCmd.AddCommand(stylesAddCmd)
}

func runStylesLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(cfg.StylesPath)
	if os.IsNotExist(err) {
		pterm.Info.Printfln("No styles installed yet (styles path: %s)", cfg.StylesPath)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read styles path %s", cfg.StylesPath)
	}

	rows := pterm.TableData{{"Style", "Version", "Description"}}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version, description := "-", "-"
		if manifest, err := style.ReadManifest(filepath.Join(cfg.StylesPath, entry.Name())); err == nil {
			if manifest.Version != "" {
				version = manifest.Version
			}
			if manifest.Description != "" {
				description = manifest.Description
			}
		}
		rows = append(rows, []string{entry.Name(), version, description})
	}
	if len(rows) == 1 {
		pterm.Info.Printfln("No styles installed yet (styles path: %s)", cfg.StylesPath)
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runStylesAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Fetching style package...")
	name, err := style.Fetch(args[0], cfg.StylesPath, logger.Logger)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Fetch failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Style installed")
	}
	pterm.Success.Printfln("Installed style %q; add it to the 'styles' list in quill.toml to use it", name)
	return nil
}
