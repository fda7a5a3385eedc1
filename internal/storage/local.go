package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes files under a directory served at /uploads.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}

var _ Storage = (*LocalStorage)(nil)
