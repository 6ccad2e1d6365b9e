package commands

import (
	"github.com/abdul-hamid-achik/themer/pkg/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve theme tools over MCP",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the
list_themes, show_theme, install_theme and current_theme tools.`,
	Args: cobra.NoArgs,
	Run:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	dir, err := cfg.RequireDir()
	if err != nil {
		exitWithError(err)
	}

	if err := mcp.NewServer(dir).Serve(); err != nil {
		exitWithError(err)
	}
}
