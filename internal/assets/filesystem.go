package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// NewDirLoader returns a loader over the directory basePath. Files are read
// through os.Root, so a symlink pointing outside basePath fails with
// ErrPathTraversal instead of being followed.
func NewDirLoader(basePath string) (*FSLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, basePath)
	}
	root, err := os.OpenRoot(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return NewFSLoader(rootFS{root: root}), nil
}

// rootFS adapts os.Root to fs.FS and names escaping symlinks.
type rootFS struct {
	root *os.Root
}

func (r rootFS) Open(name string) (fs.File, error) {
	f, err := r.root.Open(name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return f, err
	}
	if info, lerr := r.root.Lstat(name); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
		return nil, fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	return nil, err
}
