// Package state records which theme is installed in a repository.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/themer/internal/fsutil"
	"github.com/gofrs/flock"
)

// ErrNotInstalled is returned when no theme has been recorded yet.
var ErrNotInstalled = errors.New("no theme installed")

const (
	cacheDir      = ".cache"
	installedFile = "installed"
)

// Store reads and writes the installed-theme record of a repository.
// Access is serialized across processes with a lock file next to the record.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a Store for the repository at dir.
func NewStore(dir string) *Store {
	path := filepath.Join(dir, cacheDir, installedFile)
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the location of the record.
func (s *Store) Path() string {
	return s.path
}

// Read returns the name of the installed theme.
func (s *Store) Read() (string, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return "", ErrNotInstalled
	}

	if err := s.lock.RLock(); err != nil {
		return "", fmt.Errorf("failed to acquire lock on %s: %w", s.path, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotInstalled
	}
	if err != nil {
		return "", fmt.Errorf("could not read installed theme file: %w", err)
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrNotInstalled
	}
	return name, nil
}

// Write records name as the installed theme.
func (s *Store) Write(name string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create cache directory: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", s.path, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := fsutil.AtomicWrite(s.path, []byte(name), 0644); err != nil {
		return fmt.Errorf("could not record installed theme: %w", err)
	}
	return nil
}

// Clear removes the record.
func (s *Store) Clear() error {
	if err := s.lock.Lock(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to acquire lock on %s: %w", s.path, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not clear installed theme: %w", err)
	}
	return nil
}
