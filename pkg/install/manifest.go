// Package install reads the install manifest of a theme repository and
// installs the files it lists for a theme chain.
package install

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Dir is the manifest directory inside a repository.
const Dir = "install"

// ErrNoManifest is returned when the install directory has no manifest.
var ErrNoManifest = errors.New("no install manifest")

// FileSpec describes one installed file.
type FileSpec struct {
	// Name selects the unit whose values render the file; defaults to the
	// path's base name without extension
	Name string `mapstructure:"name" json:"name"`
	// Path is relative to the theme directories and the install directory
	Path string `mapstructure:"path" json:"path"`
	// Target is a template rendered with the manifest vars
	Target string `mapstructure:"target" json:"target"`
	// Template enables value rendering; otherwise the file is copied
	Template bool `mapstructure:"template" json:"template"`
}

// Manifest is the content of install/install.{yaml,toml,json}.
type Manifest struct {
	Dir string `mapstructure:"-" json:"dir"`
	// Vars keys are lowercase; viper keys are case-insensitive
	Vars  map[string]string `mapstructure:"vars" json:"vars"`
	Files []FileSpec        `mapstructure:"files" json:"files"`
}

// LoadManifest reads the manifest from dir.
func LoadManifest(dir string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigName("install")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w in %s", ErrNoManifest, dir)
		}
		return nil, fmt.Errorf("install manifest parse error: %w", err)
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("install manifest parse error: %w", err)
	}
	if len(m.Files) == 0 && v.IsSet("file") {
		if err := v.UnmarshalKey("file", &m.Files); err != nil {
			return nil, fmt.Errorf("install manifest parse error: %w", err)
		}
	}

	m.Dir = dir
	if m.Vars == nil {
		m.Vars = make(map[string]string)
	}
	if err := m.normalize(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) normalize() error {
	for i := range m.Files {
		f := &m.Files[i]
		if f.Path == "" {
			return fmt.Errorf("install manifest: file %d has no path", i)
		}
		if f.Target == "" {
			return fmt.Errorf("install manifest: file '%s' has no target", f.Path)
		}
		if f.Name == "" {
			base := filepath.Base(f.Path)
			f.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
	return nil
}
