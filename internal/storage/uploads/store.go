// Package uploads stores raw uploaded files on the local filesystem and
// resolves the storage references embedded in order records.
package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	dir string
}

// New creates the upload directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes content under a collision-free name and returns the storage
// reference (the name relative to the uploads directory).
func (s *Store) Save(ctx context.Context, filename string, content []byte) (string, error) {
	ref := strings.ReplaceAll(uuid.NewString(), "-", "")[:8] + "_" + sanitize(filename)
	path := filepath.Join(s.dir, ref)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write upload %s: %w", path, err)
	}
	return ref, nil
}

// Path resolves a storage reference back to an absolute location.
func (s *Store) Path(ref string) string {
	return filepath.Join(s.dir, filepath.Base(ref))
}

// sanitize strips path separators so a hostile filename cannot escape the
// uploads directory.
func sanitize(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "upload"
	}
	return name
}
