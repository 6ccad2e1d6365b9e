package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/themer/internal/fsutil"
	"github.com/abdul-hamid-achik/themer/pkg/hooks"
	"github.com/abdul-hamid-achik/themer/pkg/theme"
	"github.com/cbroglie/mustache"
)

// EmptyThemeName is the theme name hooks see for an empty install.
const EmptyThemeName = "empty"

// Result describes one installed file.
type Result struct {
	Name     string `json:"name"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Template bool   `json:"template"`
}

// Installer installs the files of a manifest.
type Installer struct {
	manifest *Manifest
	runner   *hooks.Runner
	trace    func(format string, args ...any)
}

// NewInstaller creates an Installer for m. A nil runner runs hooks with the
// process's standard streams.
func NewInstaller(m *Manifest, runner *hooks.Runner) *Installer {
	if runner == nil {
		runner = &hooks.Runner{}
	}
	return &Installer{manifest: m, runner: runner}
}

// SetTrace sets a function receiving progress messages.
func (i *Installer) SetTrace(fn func(format string, args ...any)) {
	i.trace = fn
}

func (i *Installer) tracef(format string, args ...any) {
	if i.trace != nil {
		i.trace(format, args...)
	}
}

// Install installs chain (base first, installed theme last). Global hooks
// and then each theme's hooks run before and after the files are written.
func (i *Installer) Install(ctx context.Context, chain []*theme.Theme, global *hooks.Set) ([]Result, error) {
	if len(chain) == 0 {
		return nil, errors.New("empty theme chain")
	}
	target := chain[len(chain)-1]

	i.tracef("installing theme '%s'", target.Name)
	for j := len(chain) - 2; j >= 0; j-- {
		i.tracef("inherits '%s'", chain[j].Name)
	}

	// Themes without a directory hand hooks the repository root
	dir := target.Dir
	if dir == "" {
		dir = filepath.Dir(i.manifest.Dir)
	}
	return i.install(ctx, chain, global, dir, target.Name)
}

// InstallEmpty installs the manifest files with no theme values.
// Global hooks receive dir and the name "empty".
func (i *Installer) InstallEmpty(ctx context.Context, global *hooks.Set, dir string) ([]Result, error) {
	empty := &theme.Theme{Name: EmptyThemeName, Units: map[string]*theme.Unit{}}
	i.tracef("installing empty theme")
	return i.install(ctx, []*theme.Theme{empty}, global, dir, EmptyThemeName)
}

func (i *Installer) install(ctx context.Context, chain []*theme.Theme, global *hooks.Set, themeDir, themeName string) ([]Result, error) {
	if err := i.runHooks(ctx, chain, global, hooks.PreInstall, themeDir, themeName); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(i.manifest.Files))
	for _, f := range i.manifest.Files {
		var (
			res Result
			err error
		)
		if f.Template {
			res, err = i.installTemplate(chain, f)
		} else {
			res, err = i.installCopy(chain, f)
		}
		if err != nil {
			return results, fmt.Errorf("installing %s: %w", f.Name, err)
		}
		results = append(results, res)
	}

	if err := i.runHooks(ctx, chain, global, hooks.PostInstall, themeDir, themeName); err != nil {
		return results, err
	}
	return results, nil
}

func (i *Installer) runHooks(ctx context.Context, chain []*theme.Theme, global *hooks.Set, stage hooks.Stage, themeDir, themeName string) error {
	if err := i.runner.Run(ctx, global, stage, themeDir, themeName); err != nil {
		return fmt.Errorf("global %s hooks: %w", stage, err)
	}
	for _, t := range chain {
		if err := i.runner.Run(ctx, t.Hooks, stage, t.Dir, t.Name); err != nil {
			return fmt.Errorf("theme '%s' %s hook: %w", t.Name, stage, err)
		}
	}
	return nil
}

func (i *Installer) installTemplate(chain []*theme.Theme, f FileSpec) (Result, error) {
	i.tracef("installing template '%s'", f.Name)

	src := i.resolveSource(chain, f.Path)
	data, info, err := readSource(src)
	if err != nil {
		return Result{}, err
	}

	tmpl, err := mustache.ParseString(string(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to compile template: %w", err)
	}

	// Values the theme chain does not define render empty
	out, err := tmpl.Render(theme.MergeValues(chain, f.Name))
	if err != nil {
		return Result{}, fmt.Errorf("failed to render template: %w", err)
	}

	target, err := i.ResolveTarget(f.Target)
	if err != nil {
		return Result{}, err
	}
	if err := fsutil.AtomicWrite(target, []byte(out), info.Mode().Perm()); err != nil {
		return Result{}, fmt.Errorf("failed to write file: %w", err)
	}

	return Result{Name: f.Name, Source: src, Target: target, Template: true}, nil
}

func (i *Installer) installCopy(chain []*theme.Theme, f FileSpec) (Result, error) {
	i.tracef("installing file '%s'", f.Name)

	src := i.resolveSource(chain, f.Path)
	target, err := i.ResolveTarget(f.Target)
	if err != nil {
		return Result{}, err
	}
	if err := fsutil.CopyFile(target, src); err != nil {
		return Result{}, fmt.Errorf("failed to copy file: %w", err)
	}

	return Result{Name: f.Name, Source: src, Target: target}, nil
}

func readSource(path string) ([]byte, os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return data, info, nil
}

// resolveSource returns the most specific existing copy of path: the
// installed theme's directory first, then its parents, then the install
// directory.
func (i *Installer) resolveSource(chain []*theme.Theme, path string) string {
	for j := len(chain) - 1; j >= 0; j-- {
		if chain[j].Dir == "" {
			continue
		}
		candidate := filepath.Join(chain[j].Dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(i.manifest.Dir, path)
}

// ResolveTarget renders target as a mustache template over the manifest vars
// and expands a leading ~/. An undefined var renders empty.
func (i *Installer) ResolveTarget(target string) (string, error) {
	tmpl, err := mustache.ParseString(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve installation path: %w", err)
	}

	rendered, err := tmpl.Render(i.manifest.Vars)
	if err != nil {
		return "", fmt.Errorf("failed to resolve installation path: %w", err)
	}

	path, err := fsutil.ExpandHome(rendered)
	if err != nil {
		return "", fmt.Errorf("failed to resolve installation path: %w", err)
	}
	return path, nil
}
