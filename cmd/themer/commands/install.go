package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/themer/pkg/install"
	"github.com/abdul-hamid-achik/themer/pkg/manager"
	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [theme]",
	Short: "Install a theme",
	Long: `Install a theme together with the themes it inherits from.

Values of the theme override those of its parents, and the "default" theme,
when the repository has one, is the base of every theme. Global and theme
hooks run before and after the files are written.

Without a theme name on a terminal, a picker lists the available themes.

Examples:
  themer install dark
  themer install`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInstall,
}

var emptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Install the files with no theme values",
	Long: `Install every file of the manifest with no theme values, then forget
the installed theme. Global hooks run with the theme name "empty".`,
	Args: cobra.NoArgs,
	Run:  runEmpty,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-install the installed theme",
	Args:  cobra.NoArgs,
	Run:   runUpdate,
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(emptyCmd)
	rootCmd.AddCommand(updateCmd)
}

// signalContext is cancelled on SIGINT or SIGTERM, stopping running hooks.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runInstall(cmd *cobra.Command, args []string) {
	m, err := openManager()
	if err != nil {
		exitWithError(err)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = pickTheme(m)
		if err != nil {
			exitWithError(err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := m.Install(ctx, name)
	if err != nil {
		exitWithError(fmt.Errorf("failed to install theme '%s': %w", name, err))
	}
	reportInstall(name, results)
}

func pickTheme(m *manager.Manager) (string, error) {
	names := m.Catalog().Names()
	if len(names) == 0 {
		return "", errors.New("the repository has no themes")
	}
	if jsonOutput || !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", errors.New("a theme name is required")
	}

	current, _ := m.Installed()
	choice := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Description("Select the theme to install").
				Options(huh.NewOptions(names...)...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("cancelled: %w", err)
	}
	return choice, nil
}

func runEmpty(cmd *cobra.Command, args []string) {
	m, err := openManager()
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := m.InstallEmpty(ctx)
	if err != nil {
		exitWithError(fmt.Errorf("failed to install empty theme: %w", err))
	}
	reportInstall(install.EmptyThemeName, results)
}

func runUpdate(cmd *cobra.Command, args []string) {
	m, err := openManager()
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	name, results, err := m.Update(ctx)
	if err != nil {
		exitWithError(err)
	}
	reportInstall(name, results)
}

func reportInstall(name string, results []install.Result) {
	if jsonOutput {
		printSuccess(InstallOutput{Theme: name, Files: results})
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, r := range results {
		fmt.Printf("  %s %s %s\n", green("✓"), r.Target, dim("("+r.Name+")"))
	}
	fmt.Printf("\n  %s Installed %s\n", green("✓"), cyan(name))
}
