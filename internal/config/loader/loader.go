// Package loader reads configuration sources into generic maps.
//
// File loaders parse TOML or YAML by extension; the environment loader maps
// MARKSMITH_* variables onto setting paths. Maps from several sources are
// combined with DeepMerge, later sources winning.
package loader

import (
	"io/fs"
	"os"
)

// Loader produces one configuration layer.
// A source that does not exist yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem is the read access the file loader needs.
// fstest.MapFS satisfies it.
type FileSystem interface {
	fs.ReadFileFS
}

// OSFS reads from the host file system. Paths are used as given, so unlike
// os.DirFS absolute paths work.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile implements fs.ReadFileFS.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// DefaultFS returns OSFS.
func DefaultFS() FileSystem {
	return OSFS{}
}
