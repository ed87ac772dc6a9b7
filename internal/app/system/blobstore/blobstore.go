// internal/app/system/blobstore/blobstore.go

// Package blobstore persists small opaque blobs on the local filesystem.
// The challenge cache uses it to keep a snapshot of the upstream catalog
// across restarts.
package blobstore

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by Load when no blob exists under the name.
var ErrNotFound = errors.New("blobstore: blob not found")

// Store reads and writes named blobs under a base directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a blob store rooted at dir on the given filesystem. Pass
// afero.NewOsFs() for real storage or afero.NewMemMapFs() in tests.
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Load returns the contents of the named blob, or ErrNotFound.
func (s *Store) Load(name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save writes the named blob, creating the base directory if needed.
func (s *Store) Save(name string, data []byte) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, filepath.Join(s.dir, name), data, 0o644)
}

// Delete removes the named blob. Deleting a missing blob is not an error.
func (s *Store) Delete(name string) error {
	err := s.fs.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
