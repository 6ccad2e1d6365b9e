package commands

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/themer/pkg/state"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var displayCmd = &cobra.Command{
	Use:     "display",
	Aliases: []string{"list"},
	Short:   "List the themes of the repository",
	Long: `List every theme with its parent, units, value counts and hooks.
The installed theme is marked with *.`,
	Args: cobra.NoArgs,
	Run:  runDisplay,
}

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "List the global hooks",
	Args:  cobra.NoArgs,
	Run:   runHooks,
}

func init() {
	rootCmd.AddCommand(displayCmd)
	rootCmd.AddCommand(hooksCmd)
}

func runDisplay(cmd *cobra.Command, args []string) {
	m, err := openManager()
	if err != nil {
		exitWithError(err)
	}

	installed, err := m.Installed()
	if err != nil && !errors.Is(err, state.ErrNotInstalled) {
		exitWithError(err)
	}

	themes := m.Catalog().Themes()
	if jsonOutput {
		out := DisplayOutput{Dir: m.Dir(), Installed: installed, Total: len(themes)}
		for _, t := range themes {
			out.Themes = append(out.Themes, themeOutput(t, installed))
		}
		printSuccess(out)
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Printf("\n  %s %s\n\n", cyan("Themes"), dim(m.Dir()))
	if len(themes) == 0 {
		fmt.Println("  No themes found")
		return
	}

	for _, t := range themes {
		marker := " "
		if t.Name == installed {
			marker = green("*")
		}
		line := fmt.Sprintf("  %s %s", marker, cyan(t.Name))
		if t.Options.Inherits != "" {
			line += dim(" inherits " + t.Options.Inherits)
		}
		fmt.Println(line)

		if t.Options.Description != "" {
			fmt.Printf("      %s\n", t.Options.Description)
		}
		for _, name := range t.UnitNames() {
			fmt.Printf("      %s %s\n", name, dim(fmt.Sprintf("(%d values)", len(t.Units[name].Values))))
		}
		for _, h := range hookOutputs(t.Hooks) {
			fmt.Printf("      %s %s\n", dim(h.Stage+" hook"), h.Name)
		}
	}
	fmt.Println()
}

func runHooks(cmd *cobra.Command, args []string) {
	m, err := openManager()
	if err != nil {
		exitWithError(err)
	}

	hs := hookOutputs(m.GlobalHooks())
	if jsonOutput {
		printSuccess(HooksOutput{Hooks: hs, Total: len(hs)})
		return
	}

	dim := color.New(color.Faint).SprintFunc()
	if len(hs) == 0 {
		fmt.Println("  No global hooks")
		return
	}
	for _, h := range hs {
		fmt.Printf("  %-12s %s %s\n", h.Stage, h.Name, dim(h.Path))
	}
}
