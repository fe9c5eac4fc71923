package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/quillcheck/quill/cache"
	"github.com/quillcheck/quill/logger"
)

// CacheCmd represents the cache command
var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the result cache",
	Long: `Inspect or clear the result cache.

Examples:
  quill cache stats
  quill cache rm README.md
  quill cache clear`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached result",
	RunE:  runCacheClear,
}

var cacheRmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Remove the cached result for one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheRm,
}

func init() {
	CacheCmd.AddCommand(cacheStatsCmd)
	CacheCmd.AddCommand(cacheClearCmd)
	CacheCmd.AddCommand(cacheRmCmd)
}

func openStore(cmd *cobra.Command) (*cache.Store, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := cache.Open(cfg.Cache.Path, logger.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewStore(db, logger.Logger), func() { db.Close() }, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Cached results: %d", stats.Entries)
	if stats.Entries > 0 {
		pterm.Printfln("  Oldest: %s", stats.Oldest.Format("2006-01-02 15:04:05"))
		pterm.Printfln("  Newest: %s", stats.Newest.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Clear(); err != nil {
		return err
	}
	pterm.Success.Println("Cache cleared")
	return nil
}

func runCacheRm(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	pterm.Success.Printfln("Removed cached result for %s", args[0])
	return nil
}
