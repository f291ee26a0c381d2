// Package media is the blob-store collaborator: save a blob, get back a
// stable reference, delete by reference. The filesystem implementation is all
// the storefront needs; the interface keeps an object store swappable.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
	Delete(ctx context.Context, ref string) error
}

type FSStore struct {
	Dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create dir: %w", err)
	}
	return &FSStore{Dir: dir}, nil
}

func (s *FSStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	ref := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("media: write: %w", err)
	}
	return ref, nil
}

func (s *FSStore) Delete(_ context.Context, ref string) error {
	// refs are uuid-based file names; reject anything path-like
	if ref != filepath.Base(ref) {
		return fmt.Errorf("media: bad reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.Dir, ref))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("media: delete: %w", err)
	}
	return nil
}
