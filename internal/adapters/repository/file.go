package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dataDirPermission  = 0o700
	dataFilePermission = 0o600
)

// FileKV stores each key as <dir>/<key>.json. Writes are plain overwrites.
type FileKV struct {
	dir string
}

// NewFileKV creates dir if needed and returns a FileKV rooted there.
func NewFileKV(dir string) (*FileKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty data dir", ErrBackend)
	}
	if err := os.MkdirAll(dir, dataDirPermission); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrBackend, err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrKey, key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Get reads the file for key.
func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return raw, true, nil
}

// Set overwrites the file for key.
func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, value, dataFilePermission); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}
