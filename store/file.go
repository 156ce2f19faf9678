package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore keeps one YAML document per namespace under a base directory.
// Commits rewrite the document through a temporary file and a rename, so a
// reader never observes a half-written record.
type FileStore struct {
	mu       sync.Mutex
	basePath string
	closed   bool
}

// fileDocument is the on-disk layout of a namespace.
type fileDocument struct {
	Namespace string           `yaml:"namespace"`
	Ints      map[string]int64 `yaml:"ints,omitempty"`
	Bools     map[string]bool  `yaml:"bools,omitempty"`
}

// NewFileStore creates a file-backed store rooted at basePath, creating the
// directory when it does not exist.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("appirater/store: create directory: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Load reads the namespace document. A missing file is an empty record.
func (f *FileStore) Load(_ context.Context, namespace string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return Record{}, ErrClosed
	}
	return f.read(namespace)
}

// Commit merges batch into the namespace document and rewrites it.
func (f *FileStore) Commit(_ context.Context, namespace string, batch Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	r, err := f.read(namespace)
	if err != nil {
		return err
	}
	r.Merge(batch)

	content, err := yaml.Marshal(fileDocument{
		Namespace: namespace,
		Ints:      r.Ints,
		Bools:     r.Bools,
	})
	if err != nil {
		return fmt.Errorf("appirater/store: marshal %s: %w", namespace, err)
	}

	tmp, err := os.CreateTemp(f.basePath, ".appirater-*")
	if err != nil {
		return fmt.Errorf("appirater/store: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("appirater/store: write %s: %w", namespace, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("appirater/store: sync %s: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("appirater/store: close %s: %w", namespace, err)
	}

	if err := os.Rename(tmp.Name(), f.path(namespace)); err != nil {
		return fmt.Errorf("appirater/store: replace %s: %w", namespace, err)
	}
	return nil
}

// Reset deletes the namespace document.
func (f *FileStore) Reset(_ context.Context, namespace string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	err := os.Remove(f.path(namespace))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("appirater/store: remove %s: %w", namespace, err)
	}
	return nil
}

// Close marks the store closed. Every commit is already on disk.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return nil
}

func (f *FileStore) read(namespace string) (Record, error) {
	content, err := os.ReadFile(f.path(namespace))
	if errors.Is(err, os.ErrNotExist) {
		return NewRecord(), nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("appirater/store: read %s: %w", namespace, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return Record{}, fmt.Errorf("appirater/store: parse %s: %w", namespace, err)
	}

	r := NewRecord()
	r.Merge(Record{Ints: doc.Ints, Bools: doc.Bools})
	return r, nil
}

// path maps a namespace to its file, keeping separators out of the name.
func (f *FileStore) path(namespace string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(namespace)
	return filepath.Join(f.basePath, name+".yaml")
}
