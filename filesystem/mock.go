package filesystem

import (
	"context"
	"io/fs"
)

// MockFS allows mocking a filesystem.
type MockFS struct {
	MkdirAllFunc  func(context.Context, string) error
	ReadFileFunc  func(context.Context, string) ([]byte, error)
	WriteFileFunc func(context.Context, string, []byte) error
	RemoveFunc    func(context.Context, string) error
	AccessFunc    func(context.Context, string) error
	RemoveAllFunc func(context.Context, string) error
	StatFunc      func(context.Context, string) (fs.FileInfo, error)
	ReadDirFunc   func(context.Context, string) ([]fs.DirEntry, error)
	AbsFunc       func(string) (string, error)
}

var _ Filesystem = &MockFS{}

// MkdirAll calls m.MkdirAllFunc
func (m *MockFS) MkdirAll(ctx context.Context, path string) error {
	return m.MkdirAllFunc(ctx, path)
}

// ReadFile calls m.ReadFileFunc
func (m *MockFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return m.ReadFileFunc(ctx, path)
}

// WriteFile calls m.WriteFileFunc
func (m *MockFS) WriteFile(ctx context.Context, path string, data []byte) error {
	return m.WriteFileFunc(ctx, path, data)
}

// Remove calls m.RemoveFunc
func (m *MockFS) Remove(ctx context.Context, path string) error {
	return m.RemoveFunc(ctx, path)
}

// Access calls m.AccessFunc
func (m *MockFS) Access(ctx context.Context, path string) error {
	return m.AccessFunc(ctx, path)
}

// RemoveAll calls m.RemoveAllFunc
func (m *MockFS) RemoveAll(ctx context.Context, path string) error {
	return m.RemoveAllFunc(ctx, path)
}

// Stat calls m.StatFunc
func (m *MockFS) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	return m.StatFunc(ctx, path)
}

// ReadDir calls m.ReadDirFunc
func (m *MockFS) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	return m.ReadDirFunc(ctx, path)
}

// Abs calls m.AbsFunc, or returns path unchanged when AbsFunc is unset.
func (m *MockFS) Abs(path string) (string, error) {
	if m.AbsFunc == nil {
		return path, nil
	}
	return m.AbsFunc(path)
}
