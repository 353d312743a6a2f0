package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

// SQLiteStore persists key/value pairs in a SQLite database.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path. When the database
// cannot be opened the store degrades to a FileStore next to it.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	fallbackDir := filepath.Join(filepath.Dir(path), "kv")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, fallback: NewFileStore(fallbackDir)}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteStore{path: path, fallback: NewFileStore(fallbackDir)}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT
	);`)
	return err
}

// GetItem implements ports.KeyValueStore.
func (s *SQLiteStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return s.fallback.GetItem(ctx, key)
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem implements ports.KeyValueStore.
func (s *SQLiteStore) SetItem(ctx context.Context, key, value string) error {
	if s.db == nil {
		return s.fallback.SetItem(ctx, key, value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(domain.TimestampFormat))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// RemoveItem implements ports.KeyValueStore.
func (s *SQLiteStore) RemoveItem(ctx context.Context, key string) error {
	if s.db == nil {
		return s.fallback.RemoveItem(ctx, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Dir()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ ports.KeyValueStore = (*SQLiteStore)(nil)
