package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Read()
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestStore_WriteRead(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	require.NoError(t, s.Write("dark"))
	assert.Equal(t, filepath.Join(dir, ".cache", "installed"), s.Path())

	name, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "dark", name)

	require.NoError(t, s.Write("light"))
	name, err = NewStore(dir).Read()
	require.NoError(t, err)
	assert.Equal(t, "light", name)
}

func TestStore_ReadTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".cache"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cache", "installed"), []byte("dark\n"), 0644))

	name, err := NewStore(dir).Read()
	require.NoError(t, err)
	assert.Equal(t, "dark", name)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Write("dark"))
	require.NoError(t, s.Clear())

	_, err := s.Read()
	assert.ErrorIs(t, err, ErrNotInstalled)

	require.NoError(t, s.Clear())
}
