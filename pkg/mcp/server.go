// Package mcp exposes theme repository operations as Model Context Protocol
// tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/themer/internal/version"
	"github.com/abdul-hamid-achik/themer/pkg/hooks"
	"github.com/abdul-hamid-achik/themer/pkg/manager"
	"github.com/abdul-hamid-achik/themer/pkg/state"
	"github.com/abdul-hamid-achik/themer/pkg/theme"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server serves the tools for the repository at workdir.
type Server struct {
	workdir   string
	mcpServer *server.MCPServer
	// hookOutput receives hook stdout and stderr; stdout carries the protocol
	hookOutput io.Writer
}

// NewServer creates a Server with every tool registered.
func NewServer(workdir string) *Server {
	s := &Server{
		workdir:    workdir,
		hookOutput: os.Stderr,
		mcpServer: server.NewMCPServer(
			"themer",
			version.GetVersion(),
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdin and stdout until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_themes",
		mcp.WithDescription("List the themes of the repository with their parents and units"),
	), s.handleListThemes)

	s.mcpServer.AddTool(mcp.NewTool("show_theme",
		mcp.WithDescription("Show a theme's inheritance chain and the merged values of each unit"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Theme name")),
	), s.handleShowTheme)

	s.mcpServer.AddTool(mcp.NewTool("install_theme",
		mcp.WithDescription("Install a theme, running its hooks, and record it as installed"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Theme name")),
	), s.handleInstallTheme)

	s.mcpServer.AddTool(mcp.NewTool("current_theme",
		mcp.WithDescription("Return the name of the installed theme"),
	), s.handleCurrentTheme)
}

func (s *Server) open() (*manager.Manager, error) {
	return manager.Open(s.workdir, manager.WithRunner(&hooks.Runner{
		Stdout: s.hookOutput,
		Stderr: s.hookOutput,
	}))
}

type themeSummary struct {
	Name        string   `json:"name"`
	Inherits    string   `json:"inherits,omitempty"`
	Description string   `json:"description,omitempty"`
	Dir         string   `json:"dir,omitempty"`
	Units       []string `json:"units"`
	Hooks       int      `json:"hooks"`
	Installed   bool     `json:"installed"`
}

func summarize(t *theme.Theme, installed string) themeSummary {
	return themeSummary{
		Name:        t.Name,
		Inherits:    t.Options.Inherits,
		Description: t.Options.Description,
		Dir:         t.Dir,
		Units:       t.UnitNames(),
		Hooks:       t.Hooks.Len(),
		Installed:   t.Name == installed,
	}
}

func (s *Server) handleListThemes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.open()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	installed, _ := m.Installed()
	themes := make([]themeSummary, 0, m.Catalog().Len())
	for _, t := range m.Catalog().Themes() {
		themes = append(themes, summarize(t, installed))
	}

	return jsonResult(map[string]any{
		"success": true,
		"themes":  themes,
		"count":   len(themes),
	})
}

func (s *Server) handleShowTheme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	m, err := s.open()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t, ok := m.Catalog().Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("theme '%s' does not exist", name)), nil
	}

	chain, err := m.Catalog().Chain(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chainNames := make([]string, len(chain))
	units := make(map[string]map[string]string)
	for i, c := range chain {
		chainNames[i] = c.Name
		for _, u := range c.UnitNames() {
			if _, done := units[u]; !done {
				units[u] = theme.MergeValues(chain, u)
			}
		}
	}

	installed, _ := m.Installed()
	return jsonResult(map[string]any{
		"success": true,
		"theme":   summarize(t, installed),
		"chain":   chainNames,
		"values":  units,
	})
}

func (s *Server) handleInstallTheme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	m, err := s.open()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := m.Install(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to install theme '%s': %v", name, err)), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"theme":   name,
		"files":   results,
	})
}

func (s *Server) handleCurrentTheme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.open()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name, err := m.Installed()
	if errors.Is(err, state.ErrNotInstalled) {
		return jsonResult(map[string]any{
			"success":   true,
			"installed": false,
		})
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success":   true,
		"installed": true,
		"theme":     name,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
