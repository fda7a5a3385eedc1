package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files and returns the URL clients should use
// to reach them.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}
