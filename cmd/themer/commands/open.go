package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <theme>",
	Short: "Open a theme directory",
	Long: `Open the directory of a theme with the system file browser.

Examples:
  themer open dark`,
	Args: cobra.ExactArgs(1),
	Run:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) {
	m, err := openManager()
	if err != nil {
		exitWithError(err)
	}

	name := args[0]
	t, ok := m.Catalog().Get(name)
	if !ok {
		exitWithError(fmt.Errorf("theme '%s' does not exist", name))
	}
	if t.Dir == "" {
		exitWithError(fmt.Errorf("theme '%s' has no directory", name))
	}

	if jsonOutput {
		printSuccess(OpenOutput{Theme: name, Dir: t.Dir})
		return
	}

	if err := browser.OpenFile(t.Dir); err != nil {
		exitWithError(fmt.Errorf("failed to open %s: %w", t.Dir, err))
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("  %s Opened %s\n", green("✓"), t.Dir)
}
