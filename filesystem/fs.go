// Package filesystem provides an abstraction around a filesystem
package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	dirMode  = os.FileMode(0755)
	fileMode = os.FileMode(0644)
)

// Filesystem is the set of filesystem capabilities the store relies on.
//
// Implementations must report a missing file or directory with an error for
// which KindOf returns KindNotExist. WriteFile must fail that way when the
// parent directory does not exist, rather than creating it.
type Filesystem interface {
	MkdirAll(ctx context.Context, path string) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
	// Access reports whether path can be opened for both reading and writing.
	Access(ctx context.Context, path string) error
	RemoveAll(ctx context.Context, path string) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
	Abs(path string) (string, error)
}

type defaultFS struct{}

var _ Filesystem = &defaultFS{}

func (d *defaultFS) MkdirAll(_ context.Context, path string) error {
	return os.MkdirAll(path, dirMode)
}

func (d *defaultFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a temporary file next to path, then renames it
// into place. An existing record must be writable, and a symlinked record is
// written through to its target.
func (d *defaultFS) WriteFile(_ context.Context, path string, data []byte) error {
	if target, err := filepath.EvalSymlinks(path); err == nil {
		if err := access(target); err != nil {
			return err
		}
		path = target
	}
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (d *defaultFS) Remove(_ context.Context, path string) error {
	return os.Remove(path)
}

func (d *defaultFS) Access(_ context.Context, path string) error {
	return access(path)
}

func (d *defaultFS) RemoveAll(_ context.Context, path string) error {
	return os.RemoveAll(path)
}

func (d *defaultFS) Stat(_ context.Context, path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (d *defaultFS) ReadDir(_ context.Context, path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (d *defaultFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Default returns the default filesystem implementation.
func Default() Filesystem {
	return &defaultFS{}
}
