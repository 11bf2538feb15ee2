// Package loader reads settings files into generic maps.
//
// Each supported format (TOML, YAML, JSON) has a Parser; a FileLoader
// reads a file through a FileSystem and hands the bytes to the parser
// selected by the file extension. Maps from several sources are combined
// with DeepMerge, later sources taking precedence.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ErrUnsupportedFormat indicates a file extension no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Parser decodes one file format into a map.
type Parser interface {
	// Format names the format, e.g. "toml".
	Format() string
	// Parse decodes data. source names the data in errors.
	Parse(source string, data []byte) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ParserFor returns the parser for a file name's extension.
func ParserFor(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLParser{}, nil
	case ".yaml", ".yml":
		return YAMLParser{}, nil
	case ".json":
		return JSONParser{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// FileLoader loads settings files.
type FileLoader struct {
	fs FileSystem
}

// New creates a loader reading from the OS file system.
func New() *FileLoader {
	return &FileLoader{fs: DefaultFS()}
}

// NewWithFS creates a loader with a custom file system.
func NewWithFS(fsys FileSystem) *FileLoader {
	return &FileLoader{fs: fsys}
}

// LoadFrom reads and parses the file at path. A leading "~" is expanded
// to the home directory. A missing file yields nil, nil.
func (l *FileLoader) LoadFrom(path string) (map[string]any, error) {
	p, err := ParserFor(path)
	if err != nil {
		return nil, err
	}
	path, err = ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return p.Parse(path, data)
}

// LoadFromReader parses settings read from r in the given parser's
// format.
func LoadFromReader(p Parser, r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return p.Parse("<reader>", data)
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return expanded, nil
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
