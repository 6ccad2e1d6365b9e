// Package manager ties a theme repository together: its manifest, catalog,
// global hooks and installed-theme record.
package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/themer/pkg/hooks"
	"github.com/abdul-hamid-achik/themer/pkg/install"
	"github.com/abdul-hamid-achik/themer/pkg/scanner"
	"github.com/abdul-hamid-achik/themer/pkg/state"
	"github.com/abdul-hamid-achik/themer/pkg/theme"
)

// Manager operates on one theme repository.
type Manager struct {
	dir       string
	manifest  *install.Manifest
	catalog   *theme.Catalog
	global    *hooks.Set
	warnings  []theme.Warning
	store     *state.Store
	installer *install.Installer

	observer scanner.Observer
	runner   *hooks.Runner
	trace    func(format string, args ...any)
}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver receives scan diagnostics while the repository is read.
func WithObserver(obs scanner.Observer) Option {
	return func(m *Manager) { m.observer = obs }
}

// WithRunner sets the runner used for hooks.
func WithRunner(r *hooks.Runner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithTrace receives install progress messages.
func WithTrace(fn func(format string, args ...any)) Option {
	return func(m *Manager) { m.trace = fn }
}

// Open reads the repository at dir.
func Open(dir string, opts ...Option) (*Manager, error) {
	m := &Manager{dir: filepath.Clean(dir)}
	for _, opt := range opts {
		opt(m)
	}

	info, err := os.Stat(m.dir)
	if err != nil {
		return nil, fmt.Errorf("could not open theme directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("could not open theme directory: %s is not a directory", m.dir)
	}

	manifest, err := install.LoadManifest(filepath.Join(m.dir, install.Dir))
	if err != nil {
		return nil, fmt.Errorf("could not read install directory: %w", err)
	}
	m.manifest = manifest

	catalog, warnings, err := theme.Load(m.dir, m.observer)
	if err != nil {
		return nil, fmt.Errorf("could not read themes: %w", err)
	}
	m.catalog = catalog
	m.warnings = warnings

	global, hookWarnings, err := hooks.Discover(m.dir, true, m.observer)
	if err != nil {
		return nil, fmt.Errorf("could not read global hooks: %w", err)
	}
	m.global = global
	for _, w := range hookWarnings {
		m.warnings = append(m.warnings, theme.Warning(w))
	}

	m.store = state.NewStore(m.dir)
	m.installer = install.NewInstaller(manifest, m.runner)
	m.installer.SetTrace(m.trace)
	return m, nil
}

// Dir returns the repository directory.
func (m *Manager) Dir() string { return m.dir }

// Catalog returns the themes of the repository.
func (m *Manager) Catalog() *theme.Catalog { return m.catalog }

// Manifest returns the install manifest.
func (m *Manager) Manifest() *install.Manifest { return m.manifest }

// GlobalHooks returns the repository-wide hooks.
func (m *Manager) GlobalHooks() *hooks.Set { return m.global }

// Warnings returns the non-fatal issues found by Open.
func (m *Manager) Warnings() []theme.Warning { return m.warnings }

// Installed returns the name of the installed theme, or state.ErrNotInstalled.
func (m *Manager) Installed() (string, error) {
	return m.store.Read()
}

// Install installs the named theme with its parents and records it.
func (m *Manager) Install(ctx context.Context, name string) ([]install.Result, error) {
	chain, err := m.catalog.Chain(name)
	if err != nil {
		return nil, err
	}

	results, err := m.installer.Install(ctx, chain, m.global)
	if err != nil {
		return results, err
	}

	if err := m.store.Write(name); err != nil {
		return results, err
	}
	return results, nil
}

// InstallEmpty installs the manifest files with no theme values and forgets
// the installed theme.
func (m *Manager) InstallEmpty(ctx context.Context) ([]install.Result, error) {
	results, err := m.installer.InstallEmpty(ctx, m.global, m.dir)
	if err != nil {
		return results, err
	}

	if err := m.store.Clear(); err != nil {
		return results, err
	}
	return results, nil
}

// Update re-installs the recorded theme.
func (m *Manager) Update(ctx context.Context) (string, []install.Result, error) {
	name, err := m.Installed()
	if err != nil {
		return "", nil, err
	}

	results, err := m.Install(ctx, name)
	return name, results, err
}
