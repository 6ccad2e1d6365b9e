// Package hooks discovers hook executables in a theme repository and runs
// them around installation.
//
// Hooks are found by name: hook-<stage>-<name>, or the same tokens split
// across directories (hooks/<stage>-<name>, hooks/<stage>/<name>, ...).
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/abdul-hamid-achik/themer/pkg/scanner"
)

// Stage is the point of the install lifecycle a hook runs at.
type Stage int

const (
	PreInstall Stage = iota
	PostInstall
	PreRemove
	PostRemove
)

// Stages lists every stage in lifecycle order.
var Stages = []Stage{PreInstall, PostInstall, PreRemove, PostRemove}

func (s Stage) String() string {
	switch s {
	case PreInstall:
		return "preinstall"
	case PostInstall:
		return "postinstall"
	case PreRemove:
		return "preremove"
	case PostRemove:
		return "postremove"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ParseStage converts a stage name as it appears in a hook path.
func ParseStage(name string) (Stage, bool) {
	for _, s := range Stages {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Grammar matches hook executables: hook-<stage>-<name>.
var Grammar = scanner.Grammar{
	scanner.Literal("hook"),
	scanner.Wildcard(),
	scanner.Wildcard(),
}

// Hook is a single executable.
type Hook struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Set holds the hooks of one owner (the repository or a theme) per stage.
type Set struct {
	// Global marks the repository-wide hooks
	Global bool
	stages map[Stage][]Hook
}

// NewSet creates an empty Set.
func NewSet(global bool) *Set {
	return &Set{Global: global, stages: make(map[Stage][]Hook)}
}

// Add registers a hook for stage.
func (s *Set) Add(stage Stage, h Hook) {
	s.stages[stage] = append(s.stages[stage], h)
	sort.Slice(s.stages[stage], func(i, j int) bool {
		return s.stages[stage][i].Name < s.stages[stage][j].Name
	})
}

// Hooks returns the hooks for stage, sorted by name.
func (s *Set) Hooks(stage Stage) []Hook {
	if s == nil {
		return nil
	}
	return append([]Hook(nil), s.stages[stage]...)
}

// Len returns the total number of hooks.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, hs := range s.stages {
		n += len(hs)
	}
	return n
}

// Warning is a non-fatal issue found while discovering hooks.
type Warning struct {
	FilePath string
	Message  string
}

// Discover finds the hooks below dir.
// Hooks whose stage is not known are reported as warnings and ignored.
func Discover(dir string, global bool, obs scanner.Observer) (*Set, []Warning, error) {
	s, err := scanner.NewScanner(dir, Grammar)
	if err != nil {
		return nil, nil, err
	}
	s.SetObserver(obs)

	set := NewSet(global)
	var warnings []Warning
	for _, entry := range s.FileEntries() {
		stageName, name := entry.Captures[0], entry.Captures[1]

		stage, ok := ParseStage(stageName)
		if !ok {
			warnings = append(warnings, Warning{
				FilePath: entry.Path,
				Message:  fmt.Sprintf("hook set '%s' is invalid, hook '%s' will be ignored", stageName, name),
			})
			continue
		}
		set.Add(stage, Hook{Name: name, Path: entry.Path})
	}

	return set, warnings, nil
}

// HookError reports a hook that could not be run or did not succeed.
type HookError struct {
	Stage Stage
	Hook  string
	Cause string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook '%s' %s", e.Stage, e.Hook, e.Cause)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// Runner executes hooks.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	// Trace, when set, is called before each executable starts
	Trace func(stage Stage, h Hook)
}

// Run executes every hook of stage in s, in name order, stopping at the
// first failure. Each executable gets the theme directory and theme name as
// arguments and runs from its own directory.
func (r *Runner) Run(ctx context.Context, s *Set, stage Stage, themeDir, themeName string) error {
	for _, h := range s.Hooks(stage) {
		if r.Trace != nil {
			r.Trace(stage, h)
		}

		cmd := exec.CommandContext(ctx, h.Path, themeDir, themeName)
		cmd.Dir = filepath.Dir(h.Path)
		cmd.Stdout = r.stdout()
		cmd.Stderr = r.stderr()

		if err := cmd.Start(); err != nil {
			return &HookError{Stage: stage, Hook: h.Name, Cause: "failed to start: " + err.Error(), Err: err}
		}

		if err := cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return &HookError{Stage: stage, Hook: h.Name, Cause: err.Error(), Err: err}
			}
			cause := "terminated by signal"
			if code := exitErr.ExitCode(); code >= 0 {
				cause = fmt.Sprintf("finished with exit code %d", code)
			}
			return &HookError{Stage: stage, Hook: h.Name, Cause: cause, Err: err}
		}
	}
	return nil
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
