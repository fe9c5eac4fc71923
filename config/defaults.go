package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDirPermissions for the ~/.quill directory tree.
const DefaultDirPermissions = 0o755

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("styles_path", defaultStylesPath())
	v.SetDefault("styles", []string{})
	v.SetDefault("min_alert_level", "suggestion")
	v.SetDefault("extensions", []string{".md", ".txt", ".rst", ".adoc"})
	v.SetDefault("ignore", []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"})
	v.SetDefault("output", "table")
	v.SetDefault("parallel", true)

	v.SetDefault("cache.path", defaultCachePath())
	v.SetDefault("cache.disabled", false)

	v.SetDefault("watch.debounce_ms", 500)
	v.SetDefault("watch.rate_per_second", 2.0)
	v.SetDefault("watch.burst", 1)
}

func quillHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quill"
	}
	return filepath.Join(home, ".quill")
}

func defaultStylesPath() string {
	return filepath.Join(quillHome(), "styles")
}

func defaultCachePath() string {
	return filepath.Join(quillHome(), "cache.db")
}
