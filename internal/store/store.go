// Package store persists the files of a generated pyramid.
package store

import (
	"os"
	"path"
	"path/filepath"
)

// Store receives every file of a pyramid by its slash separated name
// relative to the output root. Implementations must be safe for concurrent
// use.
type Store interface {
	Put(name string, data []byte) error
	Get(name string) ([]byte, error)
	Close() error
}

// Dir writes files below a directory on disk.
type Dir struct {
	root string
}

// NewDir returns a Store writing below root, creating root if needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

// Root returns the output directory.
func (d *Dir) Root() string { return d.root }

func (d *Dir) file(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(path.Clean("/"+name)))
}

// Put writes data to name, creating parent directories on demand.
func (d *Dir) Put(name string, data []byte) error {
	p := d.file(name)
	if !IsDirectory(filepath.Dir(p)) {
		if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(p, data, 0644)
}

// Get reads the file stored as name.
func (d *Dir) Get(name string) ([]byte, error) {
	return os.ReadFile(d.file(name))
}

// Close is a no-op.
func (d *Dir) Close() error { return nil }

// IsFile tests whether given path exists and is a file
func IsFile(filePath string) bool {
	file, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	return !file.IsDir()
}

// IsDirectory tests whether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	dir, err := os.Stat(dirPath)
	if err != nil {
		return false
	}

	return dir.IsDir()
}
