package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no blob exists at a location.
var ErrNotFound = errors.New("blob not found")

// DiskStore persists raw bytes under a root directory. Locations are opaque
// unguessable paths; the store knows nothing about catalog metadata. No
// dedup, no compression, no versioning.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Store writes data to a freshly allocated location and returns it. The root
// directory is created lazily on first use; the write completes in full
// before Store returns.
func (s *DiskStore) Store(data []byte) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create blob root: %w", err)
	}
	location := filepath.Join(s.root, uuid.NewString())
	if err := os.WriteFile(location, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return location, nil
}

// Put writes data at an exact location. Used for derived artifacts, whose
// locations are fixed by convention rather than allocated.
func (s *DiskStore) Put(location string, data []byte) error {
	if err := os.WriteFile(location, data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Retrieve returns the bytes stored at location.
func (s *DiskStore) Retrieve(location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// ThumbnailLocation maps a source location and width to the derived
// artifact's location. This is a naming convention, not an index.
func (s *DiskStore) ThumbnailLocation(location string, width int) string {
	return fmt.Sprintf("%s_%d", location, width)
}
