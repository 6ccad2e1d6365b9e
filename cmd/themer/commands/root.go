// Package commands provides the CLI commands for themer.
package commands

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/themer/internal/config"
	"github.com/abdul-hamid-achik/themer/internal/log"
	"github.com/abdul-hamid-achik/themer/internal/version"
	"github.com/abdul-hamid-achik/themer/pkg/hooks"
	"github.com/abdul-hamid-achik/themer/pkg/manager"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger = log.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "themer",
	Short: "themer - a directory-based theme manager",
	Long: `themer installs themes described by the layout of a theme repository.

Themes, unit values and hooks are found by their file and directory names:
  theme-dark/unit-alacritty-background   a value of theme "dark"
  themes/dark/units/alacritty/background the same value, split into directories
  hooks/postinstall/reload               a global hook
  install/install.yaml                   the files to install and where

Quick Start:
  themer --dir ~/themes display    List themes
  themer install dark              Install a theme and its parents
  themer update                    Re-install the current theme
  themer watch                     Re-install on every change`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("dir", "", "Theme repository directory (env THEMER_DIR or THEME_MANAGER_DIR)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation and LLM agents)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	cfg = c

	mode := log.ParseColorMode(cfg.Color)
	switch mode {
	case log.ColorAlways:
		color.NoColor = false
	case log.ColorNever:
		color.NoColor = true
	}
	logger = log.New(os.Stderr, log.ParseLogLevel(cfg.LogLevel), mode)
	if cfg.File != "" {
		logger.Debugf("using config %s", cfg.File)
	}
	return nil
}

// openManager reads the configured repository and logs its warnings.
func openManager() (*manager.Manager, error) {
	dir, err := cfg.RequireDir()
	if err != nil {
		return nil, err
	}

	// Keep stdout clean for JSON output
	runner := &hooks.Runner{Stderr: os.Stderr}
	if jsonOutput {
		runner.Stdout = os.Stderr
	}
	runner.Trace = func(stage hooks.Stage, h hooks.Hook) {
		logger.Debugf("running %s hook '%s'", stage, h.Name)
	}

	m, err := manager.Open(dir,
		manager.WithObserver(logger.Observer()),
		manager.WithRunner(runner),
		manager.WithTrace(logger.Debugf),
	)
	if err != nil {
		return nil, err
	}

	for _, w := range m.Warnings() {
		logger.Warnf("%s: %s", w.FilePath, w.Message)
	}
	return m, nil
}

// exitWithError reports err in the current output mode and exits.
func exitWithError(err error) {
	if jsonOutput {
		printJSONError(err)
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "  %s %v\n", red("Error:"), err)
	}
	os.Exit(1)
}
