package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts need a POSIX shell")
	}
}

func TestParseStage(t *testing.T) {
	for _, s := range Stages {
		got, ok := ParseStage(s.String())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}

	_, ok := ParseStage("midinstall")
	assert.False(t, ok)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "hook-preinstall-b"), "true")
	writeScript(t, filepath.Join(dir, "hooks", "preinstall-a"), "true")
	writeScript(t, filepath.Join(dir, "hooks", "postinstall", "reload"), "true")
	writeScript(t, filepath.Join(dir, "hooks", "midinstall-x"), "true")
	writeScript(t, filepath.Join(dir, "hooks", "_disabled-x"), "true")

	set, warnings, err := Discover(dir, true, nil)
	require.NoError(t, err)

	assert.True(t, set.Global)
	assert.Equal(t, 3, set.Len())

	pre := set.Hooks(PreInstall)
	require.Len(t, pre, 2)
	assert.Equal(t, "a", pre[0].Name)
	assert.Equal(t, "b", pre[1].Name)

	post := set.Hooks(PostInstall)
	require.Len(t, post, 1)
	assert.Equal(t, "reload", post[0].Name)
	assert.Equal(t, filepath.Join(dir, "hooks", "postinstall", "reload"), post[0].Path)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "midinstall")
}

func TestDiscover_MissingDir(t *testing.T) {
	set, warnings, err := Discover(filepath.Join(t.TempDir(), "missing"), false, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, warnings)
}

func TestNilSet(t *testing.T) {
	var s *Set
	assert.Nil(t, s.Hooks(PreInstall))
	assert.Equal(t, 0, s.Len())

	r := &Runner{}
	assert.NoError(t, r.Run(context.Background(), s, PreInstall, "/tmp", "dark"))
}

func TestRunner_Run(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "hooks", "preinstall-echo"), `echo "$1 $2 $(basename "$PWD")"`)

	set, _, err := Discover(dir, false, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	var traced []string
	r := &Runner{
		Stdout: &out,
		Stderr: &out,
		Trace:  func(stage Stage, h Hook) { traced = append(traced, stage.String()+":"+h.Name) },
	}
	require.NoError(t, r.Run(context.Background(), set, PreInstall, "/themes/dark", "dark"))

	assert.Equal(t, "/themes/dark dark hooks\n", out.String())
	assert.Equal(t, []string{"preinstall:echo"}, traced)

	// Nothing registered for this stage
	require.NoError(t, r.Run(context.Background(), set, PostRemove, "/themes/dark", "dark"))
}

func TestRunner_ExitCode(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "hook-postinstall-fail"), "exit 3")
	writeScript(t, filepath.Join(dir, "hook-postinstall-later"), "touch ran")

	set, _, err := Discover(dir, false, nil)
	require.NoError(t, err)

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err = r.Run(context.Background(), set, PostInstall, dir, "dark")
	require.Error(t, err)

	var hookErr *HookError
	require.True(t, errors.As(err, &hookErr))
	assert.Equal(t, PostInstall, hookErr.Stage)
	assert.Equal(t, "fail", hookErr.Hook)
	assert.Equal(t, "finished with exit code 3", hookErr.Cause)
	assert.EqualError(t, err, "postinstall hook 'fail' finished with exit code 3")

	_, statErr := os.Stat(filepath.Join(dir, "ran"))
	assert.True(t, os.IsNotExist(statErr), "hooks after a failure must not run")
}

func TestRunner_NotExecutable(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "hook-preinstall-plain")
	require.NoError(t, os.WriteFile(path, []byte("not a script"), 0644))

	set, _, err := Discover(dir, false, nil)
	require.NoError(t, err)

	err = (&Runner{}).Run(context.Background(), set, PreInstall, dir, "dark")
	var hookErr *HookError
	require.True(t, errors.As(err, &hookErr))
	assert.Contains(t, hookErr.Cause, "failed to start")
}
