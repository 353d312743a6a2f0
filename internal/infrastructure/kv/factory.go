package kv

import (
	"fmt"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

// NewStore builds the adapter selected by settings.
func NewStore(settings domain.StorageSettings) (ports.KeyValueStore, error) {
	switch settings.Backend {
	case domain.StorageSQLite, "":
		return NewSQLiteStore(settings.Path), nil
	case domain.StorageFile:
		return NewFileStore(settings.Path), nil
	case domain.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", settings.Backend)
	}
}
