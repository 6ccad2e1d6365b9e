package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/themer/pkg/hooks"
	"github.com/abdul-hamid-achik/themer/pkg/install"
	"github.com/abdul-hamid-achik/themer/pkg/theme"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ThemeOutput represents a single theme in JSON output
type ThemeOutput struct {
	Name        string         `json:"name"`
	Inherits    string         `json:"inherits,omitempty"`
	Description string         `json:"description,omitempty"`
	Dir         string         `json:"dir,omitempty"`
	Units       map[string]int `json:"units"`
	Hooks       []HookOutput   `json:"hooks,omitempty"`
	Installed   bool           `json:"installed"`
}

// HookOutput represents a single hook in JSON output
type HookOutput struct {
	Stage string `json:"stage"`
	Name  string `json:"name"`
	Path  string `json:"path"`
}

// DisplayOutput represents the JSON output for the display command
type DisplayOutput struct {
	Dir       string        `json:"dir"`
	Installed string        `json:"installed,omitempty"`
	Themes    []ThemeOutput `json:"themes"`
	Total     int           `json:"total"`
}

// InstallOutput represents the JSON output for the install, empty and
// update commands
type InstallOutput struct {
	Theme string           `json:"theme"`
	Files []install.Result `json:"files"`
}

// HooksOutput represents the JSON output for the hooks command
type HooksOutput struct {
	Hooks []HookOutput `json:"hooks"`
	Total int          `json:"total"`
}

// OpenOutput represents the JSON output for the open command
type OpenOutput struct {
	Theme string `json:"theme"`
	Dir   string `json:"dir"`
}

func hookOutputs(s *hooks.Set) []HookOutput {
	var out []HookOutput
	for _, stage := range hooks.Stages {
		for _, h := range s.Hooks(stage) {
			out = append(out, HookOutput{Stage: stage.String(), Name: h.Name, Path: h.Path})
		}
	}
	return out
}

func themeOutput(t *theme.Theme, installed string) ThemeOutput {
	units := make(map[string]int, len(t.Units))
	for name, u := range t.Units {
		units[name] = len(u.Values)
	}
	return ThemeOutput{
		Name:        t.Name,
		Inherits:    t.Options.Inherits,
		Description: t.Options.Description,
		Dir:         t.Dir,
		Units:       units,
		Hooks:       hookOutputs(t.Hooks),
		Installed:   t.Name == installed,
	}
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}
