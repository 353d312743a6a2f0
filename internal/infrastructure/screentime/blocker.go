// Package screentime records lockdown blocking windows.
package screentime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

const keyBlockingWindow = "sleepsync:blockingWindow"

// StoreBlocker implements ports.AppBlocker by persisting the requested window.
type StoreBlocker struct {
	kv        ports.KeyValueStore
	logger    ports.Logger
	available bool
}

// NewStoreBlocker builds a blocker. When available is false every request is
// refused.
func NewStoreBlocker(store ports.KeyValueStore, log ports.Logger, available bool) *StoreBlocker {
	return &StoreBlocker{kv: store, logger: log, available: available}
}

// SetBlockingWindow replaces the current window with [start, end) for apps.
func (b *StoreBlocker) SetBlockingWindow(ctx context.Context, apps []string, start, end time.Time) bool {
	if !b.available {
		b.logger.Warn("app blocking unavailable", nil)
		return false
	}
	if !end.After(start) {
		b.logger.Warn("Failed to set app blocking", map[string]interface{}{"start": start, "end": end})
		return false
	}
	if apps == nil {
		apps = []string{}
	}
	raw, err := json.Marshal(domain.BlockingWindow{Apps: apps, Start: start, End: end})
	if err != nil {
		b.logger.Error("Failed to set app blocking", err, nil)
		return false
	}
	if err := b.kv.SetItem(ctx, keyBlockingWindow, string(raw)); err != nil {
		b.logger.Error("Failed to set app blocking", err, nil)
		return false
	}
	return true
}

// Current returns the last recorded window.
func (b *StoreBlocker) Current(ctx context.Context) (domain.BlockingWindow, bool) {
	raw, found, err := b.kv.GetItem(ctx, keyBlockingWindow)
	if err != nil || !found {
		return domain.BlockingWindow{}, false
	}
	var w domain.BlockingWindow
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		b.logger.Error("Failed to read app blocking window", err, nil)
		return domain.BlockingWindow{}, false
	}
	return w, true
}

var _ ports.AppBlocker = (*StoreBlocker)(nil)
