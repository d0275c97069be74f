package veilith

import (
	"fmt"
	"io"
	"os"

	"github.com/absfs/absfs"
)

// ContainerStore persists container blobs through an absfs.FileSystem.
// It is a convenience for the application layer; the core operations work
// on byte slices and never touch storage themselves.
type ContainerStore struct {
	fs absfs.FileSystem
}

// NewContainerStore creates a store over the given filesystem
func NewContainerStore(fs absfs.FileSystem) (*ContainerStore, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	return &ContainerStore{fs: fs}, nil
}

// Save writes a container to path. The container length is validated
// before any bytes reach the filesystem.
func (s *ContainerStore) Save(path string, container []byte) error {
	if len(container) != ContainerSize {
		return ErrCorruptedContainer
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(container); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Load reads a container from path, rejecting files of the wrong size
func (s *ContainerStore) Load(path string) ([]byte, error) {
	f, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	container := make([]byte, ContainerSize)
	if _, err := io.ReadFull(f, container); err != nil {
		return nil, ErrCorruptedContainer
	}

	// Anything beyond ContainerSize means the file is not a container.
	var trailer [1]byte
	if n, _ := f.Read(trailer[:]); n != 0 {
		return nil, ErrCorruptedContainer
	}

	return container, nil
}

// Exists reports whether a container file is present at path
func (s *ContainerStore) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes the container file at path
func (s *ContainerStore) Remove(path string) error {
	return s.fs.Remove(path)
}
