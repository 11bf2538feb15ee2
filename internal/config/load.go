package config

import (
	"errors"
	"fmt"

	"github.com/dshills/linecore/internal/config/loader"
)

// ErrFileNotFound indicates a settings file given explicitly does not
// exist.
var ErrFileNotFound = errors.New("config file not found")

// DefaultPaths lists the settings files consulted when none is given,
// lowest precedence first.
var DefaultPaths = []string{
	"~/.config/linecore/settings.toml",
	"~/.config/linecore/settings.yaml",
	"~/.config/linecore/settings.json",
}

// Loader resolves Settings from files and overrides.
type Loader struct {
	files *loader.FileLoader
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader() *Loader {
	return &Loader{files: loader.New()}
}

// NewLoaderWithFS creates a loader reading from fsys.
func NewLoaderWithFS(fsys loader.FileSystem) *Loader {
	return &Loader{files: loader.NewWithFS(fsys)}
}

// LoadFile reads one settings file onto the defaults. Unlike Load, a
// missing file is an error.
func (l *Loader) LoadFile(path string) (Settings, error) {
	m, err := l.files.LoadFrom(path)
	if err != nil {
		return Settings{}, err
	}
	if m == nil {
		return Settings{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return decode(m)
}

// Load merges the files in paths, later files overriding earlier ones,
// then applies overrides on top. Missing files are skipped.
func (l *Loader) Load(paths []string, overrides map[string]any) (Settings, error) {
	merged := map[string]any{}
	for _, p := range paths {
		m, err := l.files.LoadFrom(p)
		if err != nil {
			return Settings{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}
	merged = loader.DeepMerge(merged, overrides)
	return decode(merged)
}

func decode(m map[string]any) (Settings, error) {
	s, err := FromMap(m)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
