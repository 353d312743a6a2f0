package kv

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

// FileStore keeps each key in its own file under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// GetItem implements ports.KeyValueStore.
func (f *FileStore) GetItem(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem implements ports.KeyValueStore. The value is written to a temporary
// file and renamed into place.
func (f *FileStore) SetItem(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(f.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	path := f.pathFor(key)
	if err := atomicWriteFile(path, []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// RemoveItem implements ports.KeyValueStore.
func (f *FileStore) RemoveItem(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Dir exposes the storage directory.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) pathFor(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

var _ ports.KeyValueStore = (*FileStore)(nil)
