// Package config loads Atlas settings with Viper: defaults, an optional
// atlas.toml discovered by walking up from the working directory, and
// ATLAS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/atlas/errors"
)

// Config holds the settings the CLI resolves before flags are applied
type Config struct {
	Guard GuardConfig `mapstructure:"guard"`
	Log   LogConfig   `mapstructure:"log"`
}

// GuardConfig sets the include-guard defaults for generated headers
type GuardConfig struct {
	Prefix    string `mapstructure:"prefix"`
	Separator string `mapstructure:"separator"`
	Upcase    bool   `mapstructure:"upcase"`
}

// LogConfig controls logger initialization
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

var (
	globalConfig  *Config
	viperInstance *viper.Viper
)

// Load reads the Atlas configuration, caching the result
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := GetViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// GetViper returns the shared Viper instance for advanced access
func GetViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		// a missing or unreadable project file is not fatal; defaults
		// and environment variables still apply
		_ = v.ReadInConfig()
	}

	viperInstance = v
	return v
}

// SetDefaults configures default values for all options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("guard.prefix", "")
	v.SetDefault("guard.separator", "_")
	v.SetDefault("guard.upcase", true)

	v.SetDefault("log.json", false)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// findProjectConfig searches for atlas.toml by walking up the directory tree
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "atlas.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
