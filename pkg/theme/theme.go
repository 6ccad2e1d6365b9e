// Package theme builds the theme catalog of a repository from its directory
// layout.
//
// Theme directories are named theme-<name> (or themes/<name>); unit values
// are files named theme-<name>-unit-<unit>-<value>, with any prefix of those
// tokens split into directories (theme-dark/units/alacritty/background).
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/themer/pkg/hooks"
	"github.com/abdul-hamid-achik/themer/pkg/scanner"
	"gopkg.in/yaml.v3"
)

// DefaultName is the theme every chain falls back to when it exists.
const DefaultName = "default"

// OptionsFile is the optional per-theme metadata file.
const OptionsFile = "theme.yaml"

var (
	// DirGrammar matches theme directories.
	DirGrammar = scanner.Grammar{
		scanner.Literal("theme"),
		scanner.DirWildcard(),
	}

	// ValueGrammar matches unit value files from the repository root.
	ValueGrammar = scanner.Grammar{
		scanner.Literal("theme"),
		scanner.Wildcard(),
		scanner.Literal("unit"),
		scanner.Wildcard(),
		scanner.Wildcard(),
	}
)

var (
	ErrThemeNotFound    = errors.New("theme does not exist")
	ErrInheritanceCycle = errors.New("theme inheritance cycle")
)

// Options is the content of theme.yaml.
type Options struct {
	Inherits    string `yaml:"inherits" json:"inherits,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Unit holds the values a theme defines for one installed file.
type Unit struct {
	Name   string            `json:"name"`
	Values map[string]string `json:"values"`
}

// Theme is a named set of unit values with optional hooks and files.
type Theme struct {
	Name string `json:"name"`
	// Dir is empty for themes defined only by flat value files
	Dir     string           `json:"dir,omitempty"`
	Options Options          `json:"options"`
	Units   map[string]*Unit `json:"units"`
	Hooks   *hooks.Set       `json:"-"`
}

func newTheme(name string) *Theme {
	return &Theme{Name: name, Units: make(map[string]*Unit)}
}

// Unit returns the named unit, creating it if needed.
func (t *Theme) Unit(name string) *Unit {
	u, ok := t.Units[name]
	if !ok {
		u = &Unit{Name: name, Values: make(map[string]string)}
		t.Units[name] = u
	}
	return u
}

// UnitNames returns the unit names in sorted order.
func (t *Theme) UnitNames() []string {
	names := make([]string, 0, len(t.Units))
	for name := range t.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Warning is a non-fatal issue found while loading the catalog.
type Warning struct {
	FilePath string
	Message  string
}

// Catalog is the set of themes of a repository.
type Catalog struct {
	themes map[string]*Theme
}

// NewCatalog creates a catalog holding themes.
func NewCatalog(themes ...*Theme) *Catalog {
	c := &Catalog{themes: make(map[string]*Theme)}
	for _, t := range themes {
		c.themes[t.Name] = t
	}
	return c
}

// Load reads the catalog rooted at dir.
func Load(dir string, obs scanner.Observer) (*Catalog, []Warning, error) {
	c := NewCatalog()
	var warnings []Warning

	dirs, err := scanner.NewScanner(dir, DirGrammar)
	if err != nil {
		return nil, nil, err
	}
	dirs.SetObserver(obs)

	for _, entry := range dirs.DirEntries() {
		name := entry.Captures[0]
		if existing, ok := c.themes[name]; ok {
			warnings = append(warnings, Warning{
				FilePath: entry.Path,
				Message:  fmt.Sprintf("theme '%s' is already defined at %s, directory ignored", name, existing.Dir),
			})
			continue
		}

		t := newTheme(name)
		t.Dir = entry.Path

		opts, err := readOptions(entry.Path)
		if err != nil {
			return nil, warnings, fmt.Errorf("theme '%s': %w", name, err)
		}
		t.Options = opts

		set, hookWarnings, err := hooks.Discover(entry.Path, false, obs)
		if err != nil {
			return nil, warnings, fmt.Errorf("theme '%s' hooks: %w", name, err)
		}
		t.Hooks = set
		for _, w := range hookWarnings {
			warnings = append(warnings, Warning(w))
		}

		c.themes[name] = t
	}

	values, err := scanner.NewScanner(dir, ValueGrammar)
	if err != nil {
		return nil, nil, err
	}
	values.SetObserver(obs)

	for _, entry := range values.FileEntries() {
		if w, ok := c.addValue(entry.Captures[0], entry.Captures[1], entry.Captures[2], entry.Path); !ok {
			warnings = append(warnings, w)
		}
	}

	return c, warnings, nil
}

// addValue records the content of path as a value. A theme that was not
// found as a directory is registered without one.
func (c *Catalog) addValue(themeName, unitName, valueName, path string) (Warning, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Warning{FilePath: path, Message: fmt.Sprintf("could not read value: %v", err)}, false
	}

	t, ok := c.themes[themeName]
	if !ok {
		t = newTheme(themeName)
		c.themes[themeName] = t
	}
	t.Unit(unitName).Values[valueName] = string(data)
	return Warning{}, true
}

func readOptions(dir string) (Options, error) {
	var opts Options

	data, err := os.ReadFile(filepath.Join(dir, OptionsFile))
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("failed to read %s: %w", OptionsFile, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse %s: %w", OptionsFile, err)
	}
	opts.Inherits = strings.TrimSpace(opts.Inherits)
	return opts, nil
}

// Get returns the named theme.
func (c *Catalog) Get(name string) (*Theme, bool) {
	t, ok := c.themes[name]
	return t, ok
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	return len(c.themes)
}

// Names returns the theme names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.themes))
	for name := range c.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Themes returns the themes sorted by name.
func (c *Catalog) Themes() []*Theme {
	themes := make([]*Theme, 0, len(c.themes))
	for _, name := range c.Names() {
		themes = append(themes, c.themes[name])
	}
	return themes
}

// Chain returns the inheritance chain of the named theme, base first and the
// named theme last. The default theme, when it exists, is the base of every
// chain it is not already part of.
func (c *Catalog) Chain(name string) ([]*Theme, error) {
	t, ok := c.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}

	seen := map[string]bool{name: true}
	chain := []*Theme{t}
	for t.Options.Inherits != "" {
		parentName := t.Options.Inherits
		if seen[parentName] {
			return nil, fmt.Errorf("%w: %s inherits %s", ErrInheritanceCycle, t.Name, parentName)
		}
		parent, ok := c.themes[parentName]
		if !ok {
			return nil, fmt.Errorf("theme '%s' inherits '%s': %w", t.Name, parentName, ErrThemeNotFound)
		}
		seen[parentName] = true
		chain = append(chain, parent)
		t = parent
	}

	if def, ok := c.themes[DefaultName]; ok && !seen[DefaultName] {
		chain = append(chain, def)
	}

	// Base first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// MergeValues overlays the values of unit across chain, base first, so that
// more specific themes win.
func MergeValues(chain []*Theme, unit string) map[string]string {
	values := make(map[string]string)
	for _, t := range chain {
		u, ok := t.Units[unit]
		if !ok {
			continue
		}
		for k, v := range u.Values {
			values[k] = v
		}
	}
	return values
}
