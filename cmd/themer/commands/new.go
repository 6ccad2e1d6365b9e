package commands

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/themer/pkg/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	newInherits     string
	newDescription  string
	newUnits        []string
	newHookTheme    string
	newHookTemplate string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold themes and hooks",
}

var newThemeCmd = &cobra.Command{
	Use:   "theme <name>",
	Short: "Create a theme directory",
	Long: `Create theme-<name>/ with a theme.yaml and, optionally, empty unit
directories.

Examples:
  themer new theme midnight --inherits solarized
  themer new theme dark --unit alacritty --unit termite`,
	Args: cobra.ExactArgs(1),
	Run:  runNewTheme,
}

var newHookCmd = &cobra.Command{
	Use:   "hook <stage> <name>",
	Short: "Create a hook script",
	Long: `Create an executable hook script at hooks/<stage>/<name>, in the
repository or, with --theme, in the theme's directory.

Stages: preinstall, postinstall, preremove, postremove

Examples:
  themer new hook postinstall reload --template reload
  themer new hook preinstall check --theme dark`,
	Args: cobra.ExactArgs(2),
	Run:  runNewHook,
}

func init() {
	newThemeCmd.Flags().StringVar(&newInherits, "inherits", "", "Parent theme")
	newThemeCmd.Flags().StringVar(&newDescription, "description", "", "Theme description")
	newThemeCmd.Flags().StringSliceVar(&newUnits, "unit", nil, "Unit directory to create (repeatable)")

	newHookCmd.Flags().StringVar(&newHookTheme, "theme", "", "Theme owning the hook (default: global)")
	newHookCmd.Flags().StringVarP(&newHookTemplate, "template", "t", "blank",
		"Hook template: "+strings.Join(generator.HookTemplates(), ", "))

	newCmd.AddCommand(newThemeCmd)
	newCmd.AddCommand(newHookCmd)
	rootCmd.AddCommand(newCmd)
}

func runNewTheme(cmd *cobra.Command, args []string) {
	dir, err := cfg.RequireDir()
	if err != nil {
		exitWithError(err)
	}

	result, err := generator.GenerateTheme(generator.ThemeConfig{
		Dir:         dir,
		Name:        args[0],
		Inherits:    newInherits,
		Description: newDescription,
		Units:       newUnits,
	})
	if err != nil {
		exitWithError(err)
	}
	reportGenerated(result)
}

func runNewHook(cmd *cobra.Command, args []string) {
	dir, err := cfg.RequireDir()
	if err != nil {
		exitWithError(err)
	}

	result, err := generator.GenerateHook(generator.HookConfig{
		Dir:      dir,
		Theme:    newHookTheme,
		Stage:    args[0],
		Name:     args[1],
		Template: newHookTemplate,
	})
	if err != nil {
		exitWithError(err)
	}
	reportGenerated(result)
}

func reportGenerated(result *generator.Result) {
	if jsonOutput {
		printSuccess(result)
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	for _, f := range result.Files {
		fmt.Printf("  %s Created %s\n", green("✓"), f)
	}
}
