// Package config resolves the CLI settings from flags, the environment and
// an optional themer.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/themer/internal/fsutil"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "THEMER"

// LegacyDirEnv names the repository when neither --dir nor THEMER_DIR is set.
const LegacyDirEnv = "THEME_MANAGER_DIR"

// ErrNoDir is returned when no theme repository is configured.
var ErrNoDir = errors.New("no theme directory: use --dir, THEMER_DIR or THEME_MANAGER_DIR")

// Config holds the resolved settings.
type Config struct {
	Dir      string
	LogLevel string
	Color    string
	// File is the config file that was read, if any
	File string
}

// DefaultSearchPaths returns the directories searched for themer.yaml.
func DefaultSearchPaths() []string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return []string{filepath.Join(xdg, "themer")}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".config", "themer")}
}

// Load resolves the settings. Changed flags win over THEMER_* variables,
// which win over the config file. A missing config file is not an error.
// With no search paths, DefaultSearchPaths is used.
func Load(flags *pflag.FlagSet, searchPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("color", "auto")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if len(searchPaths) == 0 {
		searchPaths = DefaultSearchPaths()
	}
	v.SetConfigName("themer")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Dir:      v.GetString("dir"),
		LogLevel: v.GetString("log-level"),
		Color:    v.GetString("color"),
		File:     v.ConfigFileUsed(),
	}
	if cfg.Dir == "" {
		cfg.Dir = os.Getenv(LegacyDirEnv)
	}
	if cfg.Dir != "" {
		dir, err := fsutil.ExpandHome(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve theme directory: %w", err)
		}
		cfg.Dir = dir
	}
	return cfg, nil
}

// RequireDir returns the repository directory or ErrNoDir.
func (c *Config) RequireDir() (string, error) {
	if c.Dir == "" {
		return "", ErrNoDir
	}
	return c.Dir, nil
}
