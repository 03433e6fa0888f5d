package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "recipehub/internal/errors"
)

// DiskBackend keeps objects as files in one directory.
type DiskBackend struct {
	dir string
}

// NewDiskBackend creates dir if needed.
func NewDiskBackend(dir string) (*DiskBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskBackend{dir: dir}, nil
}

func (b *DiskBackend) Put(_ context.Context, name string, data []byte, _ string) error {
	tmp, err := os.CreateTemp(b.dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(b.dir, name))
}

func (b *DiskBackend) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(b.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.ErrMediaNotFound
	}
	return f, err
}
