package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps uploaded files in a local directory.
type Store struct {
	baseDir string
}

func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare storage: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes data under name and returns the file path as its URI.
func (s *Store) Save(_ context.Context, name string, data []byte) (string, error) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	dst := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

// Remove deletes a file previously returned by Save. Missing files are ignored.
func (s *Store) Remove(uri string) error {
	if uri == "" {
		return nil
	}
	if err := os.Remove(uri); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
