package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) ports.KeyValueStore{
		"memory": func(t *testing.T) ports.KeyValueStore { return NewMemoryStore() },
		"file":   func(t *testing.T) ports.KeyValueStore { return NewFileStore(filepath.Join(t.TempDir(), "kv")) },
		"sqlite": func(t *testing.T) ports.KeyValueStore {
			s := NewSQLiteStore(filepath.Join(t.TempDir(), "data.db"))
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}

	for name, build := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := build(t)

			if _, found, err := store.GetItem(ctx, "missing"); err != nil || found {
				t.Fatalf("GetItem(missing) = found %v, err %v", found, err)
			}

			if err := store.SetItem(ctx, "sleepsync:appSettings", `{"theme":"dark"}`); err != nil {
				t.Fatalf("SetItem() error = %v", err)
			}
			if err := store.SetItem(ctx, "sleepsync:appSettings", `{"theme":"light"}`); err != nil {
				t.Fatalf("SetItem() overwrite error = %v", err)
			}
			got, found, err := store.GetItem(ctx, "sleepsync:appSettings")
			if err != nil || !found {
				t.Fatalf("GetItem() = found %v, err %v", found, err)
			}
			if got != `{"theme":"light"}` {
				t.Errorf("GetItem() = %q, want overwritten value", got)
			}

			if err := store.RemoveItem(ctx, "sleepsync:appSettings"); err != nil {
				t.Fatalf("RemoveItem() error = %v", err)
			}
			if _, found, _ := store.GetItem(ctx, "sleepsync:appSettings"); found {
				t.Error("item still present after RemoveItem")
			}
			if err := store.RemoveItem(ctx, "sleepsync:appSettings"); err != nil {
				t.Errorf("RemoveItem() of absent key error = %v", err)
			}
		})
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.db")

	first := NewSQLiteStore(path)
	if err := first.SetItem(ctx, "k", "v"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second := NewSQLiteStore(path)
	defer second.Close()
	got, found, err := second.GetItem(ctx, "k")
	if err != nil || !found || got != "v" {
		t.Errorf("GetItem() after reopen = %q, %v, %v", got, found, err)
	}
	if second.Path() != path {
		t.Errorf("Path() = %s, want %s", second.Path(), path)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.SetItem(ctx, "sleepsync:sleepHistory", "[]"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".json" {
		t.Errorf("unexpected file %s", entries[0].Name())
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		settings domain.StorageSettings
		wantErr  bool
	}{
		{settings: domain.StorageSettings{Backend: domain.StorageMemory}},
		{settings: domain.StorageSettings{Backend: domain.StorageFile, Path: dir}},
		{settings: domain.StorageSettings{Backend: domain.StorageSQLite, Path: filepath.Join(dir, "x.db")}},
		{settings: domain.StorageSettings{Backend: "redis"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.settings.Backend), func(t *testing.T) {
			store, err := NewStore(tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil || store == nil {
				t.Fatalf("NewStore() = %v, %v", store, err)
			}
			if closer, ok := store.(*SQLiteStore); ok {
				_ = closer.Close()
			}
		})
	}
}
