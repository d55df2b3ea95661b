package pipeline

import (
	"fmt"
	"io"
	"os"
)

// fileSystem is an internal interface for the pipeline's file needs.
// This allows injecting mocks in tests.
type fileSystem interface {
	MkdirTemp(dir, pattern string) (string, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
	RemoveAll(path string) error
	CopyFile(src, dst string) error
}

// osFileSystem is the default fileSystem backed by the os package.
type osFileSystem struct{}

func (osFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

func (osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (osFileSystem) CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- src is the user's input file
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst) // #nosec G304 -- dst is inside our spool directory
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy contents: %w", err)
	}
	return out.Close()
}
