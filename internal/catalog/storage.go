// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage is the persistence seam for the catalog: one named payload
// holding the serialized paper list. Save must replace the payload
// atomically so a reader never observes a partial write. When independent
// processes share the same storage, the payload present at load time
// wins; concurrent writers are not merged.
type Storage interface {
	// Load returns the persisted payload. ok is false when nothing has
	// been saved yet.
	Load() (data []byte, ok bool, err error)

	// Save replaces the payload with data.
	Save(data []byte) error
}

// FileStorage keeps the catalog payload in a single JSON file on disk.
type FileStorage struct {
	Path string
}

// Load reads the payload file. A missing file is not an error.
func (f *FileStorage) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading catalog file %s: %w", f.Path, err)
	}
	return data, true, nil
}

// Save writes to a temp file in the same directory and renames it into
// place.
func (f *FileStorage) Save(data []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating catalog directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*")
	if err != nil {
		return fmt.Errorf("creating temp catalog file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing catalog payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp catalog file: %w", err)
	}

	if err := os.Rename(tmpPath, f.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing catalog file %s: %w", f.Path, err)
	}
	return nil
}
