package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores the blob in a single JSON file, replaced atomically on write.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) (*FileBackend, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrInvalidInput)
	}
	return &FileBackend{path: path}, nil
}

func (b *FileBackend) Get(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Put(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("failed to create workspace dir: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workspace file: %w", err)
	}
	return os.Rename(tmp, b.path)
}

func (b *FileBackend) Ping(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(b.path))
	if errors.Is(err, fs.ErrNotExist) {
		// Created on first save.
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Dir(b.path))
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
func (b *FileBackend) Name() string { return "file" }
