package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quillcheck/quill/errors"
)

// Load reads the merged quill configuration.
// Precedence (lowest to highest): defaults < system < user < project < env.
func Load() (*Config, error) {
	v := initViper()
	return LoadWithViper(v)
}

// LoadWithViper loads configuration from a provided Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, skipping the
// merge chain. Used by --config and by tests.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return &config, nil
}

func initViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v)
	return v
}

// findProjectConfig searches for quill.toml by walking up from the working
// directory, so running quill anywhere inside a project picks up its config.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		configPath := filepath.Join(dir, "quill.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// mergeConfigFiles merges configuration files in precedence order:
// system < user < project. Env vars override all of them via viper.
func mergeConfigFiles(v *viper.Viper) {
	os.MkdirAll(quillHome(), DefaultDirPermissions)

	configPaths := []string{
		"/etc/quill/quill.toml",
		filepath.Join(quillHome(), "quill.toml"),
	}
	if projectConfig := findProjectConfig(); projectConfig != "" {
		configPaths = append(configPaths, projectConfig)
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}
		overlay := viper.New()
		overlay.SetConfigFile(configPath)
		overlay.SetConfigType("toml")
		if err := overlay.ReadInConfig(); err != nil {
			continue
		}
		for key, value := range overlay.AllSettings() {
			v.Set(key, value)
		}
	}
}
