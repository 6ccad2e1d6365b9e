// Package generator scaffolds themes and hooks in a theme repository.
package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/abdul-hamid-achik/themer/pkg/hooks"
	"github.com/abdul-hamid-achik/themer/pkg/scanner"
	"github.com/abdul-hamid-achik/themer/pkg/theme"
)

// ThemeConfig holds configuration for theme generation.
type ThemeConfig struct {
	Dir         string // Repository directory
	Name        string // Theme name (e.g., "solarized"), a single token
	Inherits    string // Parent theme, optional
	Description string
	// Units lists unit names to create empty value directories for
	Units []string
}

// HookConfig holds configuration for hook generation.
type HookConfig struct {
	Dir      string // Repository directory
	Theme    string // Owning theme directory name; empty for a global hook
	Stage    string // preinstall, postinstall, preremove, postremove
	Name     string // Hook name (e.g., "reload")
	Template string // Template name (blank, notify, reload)
}

// Result holds the result of a generation operation.
type Result struct {
	Files []string `json:"files"`
	Path  string   `json:"path"`
}

// GenerateTheme creates theme-<name>/ with a theme.yaml.
func GenerateTheme(cfg ThemeConfig) (*Result, error) {
	if err := validateThemeName(cfg.Name); err != nil {
		return nil, err
	}
	if cfg.Inherits != "" {
		if err := validateThemeName(cfg.Inherits); err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
		if cfg.Inherits == cfg.Name {
			return nil, errors.New("a theme cannot inherit from itself")
		}
	}

	dirPath := filepath.Join(cfg.Dir, "theme"+scanner.Separator+cfg.Name)
	if existing := findThemeDir(cfg.Dir, cfg.Name); existing != "" {
		return nil, fmt.Errorf("theme '%s' already exists: %s", cfg.Name, existing)
	}

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	filePath := filepath.Join(dirPath, theme.OptionsFile)
	data := themeTemplateData{Name: cfg.Name, Inherits: cfg.Inherits, Description: cfg.Description}
	if err := executeTemplate(filePath, themeTemplate, data, 0644); err != nil {
		return nil, err
	}

	result := &Result{Files: []string{filePath}, Path: dirPath}
	for _, unit := range cfg.Units {
		if err := validateToken("unit", unit); err != nil {
			return nil, err
		}
		unitDir := filepath.Join(dirPath, scanner.Plural("unit"), unit)
		if err := os.MkdirAll(unitDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		result.Files = append(result.Files, unitDir)
	}
	return result, nil
}

// GenerateHook creates an executable hooks/<stage>/<name> script, in the
// repository for a global hook or in the theme's directory.
func GenerateHook(cfg HookConfig) (*Result, error) {
	if cfg.Template == "" {
		cfg.Template = "blank"
	}
	tmplContent, ok := hookTemplates[cfg.Template]
	if !ok {
		return nil, fmt.Errorf("unknown hook template: %s (available: %s)", cfg.Template, strings.Join(HookTemplates(), ", "))
	}

	stage, ok := hooks.ParseStage(cfg.Stage)
	if !ok {
		return nil, fmt.Errorf("unknown hook stage: %s", cfg.Stage)
	}
	if err := validateToken("hook", cfg.Name); err != nil {
		return nil, err
	}

	base := cfg.Dir
	if cfg.Theme != "" {
		base = findThemeDir(cfg.Dir, cfg.Theme)
		if base == "" {
			return nil, fmt.Errorf("theme '%s' has no directory", cfg.Theme)
		}
	}

	dirPath := filepath.Join(base, scanner.Plural("hook"), stage.String())
	filePath := filepath.Join(dirPath, cfg.Name)
	if _, err := os.Stat(filePath); err == nil {
		return nil, fmt.Errorf("file already exists: %s", filePath)
	}

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	data := hookTemplateData{Stage: stage.String(), Name: cfg.Name, Theme: cfg.Theme}
	if err := executeTemplate(filePath, tmplContent, data, 0755); err != nil {
		return nil, err
	}

	return &Result{Files: []string{filePath}, Path: filePath}, nil
}

// findThemeDir returns the directory of the named theme, or "".
func findThemeDir(dir, name string) string {
	s, err := scanner.NewScanner(dir, theme.DirGrammar)
	if err != nil {
		return ""
	}
	for _, entry := range s.DirEntries() {
		if entry.Captures[0] == name {
			return entry.Path
		}
	}
	return ""
}

// validateThemeName checks that theme-<name> reads back as name.
func validateThemeName(name string) error {
	if name == "" {
		return errors.New("theme name is required")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid theme name %q", name)
	}
	m, ok := scanner.MatchDirName(theme.DirGrammar, "theme"+scanner.Separator+name)
	if !ok || len(m.Captures) != 1 || m.Captures[0] != name {
		return fmt.Errorf("invalid theme name %q", name)
	}
	return nil
}

// validateToken checks that name is a single token: no separator, no path
// separator, and not escaped.
func validateToken(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	if strings.Contains(name, scanner.Separator) || strings.ContainsAny(name, `/\`) || scanner.IsEscaped(name) {
		return fmt.Errorf("invalid %s name %q: must be a single token without '%s' or a leading '%s'",
			kind, name, scanner.Separator, scanner.EscapePrefix)
	}
	return nil
}

func executeTemplate(filePath, tmplContent string, data any, perm os.FileMode) error {
	tmpl, err := template.New(filepath.Base(filePath)).Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}
