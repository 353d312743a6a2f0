// Package settings persists the last sleep plan and the app preferences.
//
// Every failure below this boundary (storage errors, corrupt JSON, invalid
// records) is logged and turned into an absent result or a false return. None
// is handed to callers as an error.
package settings

import (
	"context"
	"encoding/json"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

const (
	keySleepPlan      = "sleepsync:sleepSettings"
	keyAppPreferences = "sleepsync:appSettings"
)

// Store reads and writes the single-slot settings records.
type Store struct {
	KV     ports.KeyValueStore
	Logger ports.Logger
}

// NewStore builds a Store.
func NewStore(store ports.KeyValueStore, log ports.Logger) *Store {
	return &Store{KV: store, Logger: log}
}

// SaveSleepPlan overwrites the stored plan. It reports whether the write happened.
func (s *Store) SaveSleepPlan(ctx context.Context, plan domain.SleepPlan) bool {
	if err := plan.Validate(); err != nil {
		s.Logger.Error("Error saving sleep settings", err, nil)
		return false
	}
	return s.put(ctx, keySleepPlan, plan, "Error saving sleep settings")
}

// LoadSleepPlan returns the stored plan, or false when none is stored or it
// cannot be decoded or fails validation.
func (s *Store) LoadSleepPlan(ctx context.Context) (domain.SleepPlan, bool) {
	var plan domain.SleepPlan
	found, ok := s.get(ctx, keySleepPlan, &plan, "Error loading sleep settings")
	if !found || !ok {
		return domain.SleepPlan{}, false
	}
	if err := plan.Validate(); err != nil {
		s.Logger.Error("Error loading sleep settings", err, map[string]interface{}{"key": keySleepPlan})
		return domain.SleepPlan{}, false
	}
	return plan, true
}

// SaveAppPreferences overwrites the preferences record.
func (s *Store) SaveAppPreferences(ctx context.Context, prefs domain.AppPreferences) bool {
	if err := prefs.Validate(); err != nil {
		s.Logger.Error("Error saving app settings", err, nil)
		return false
	}
	return s.put(ctx, keyAppPreferences, prefs, "Error saving app settings")
}

// LoadAppPreferences returns the stored preferences, or the defaults when
// nothing is stored. The bool is false when the stored record could not be
// read or fails validation; the defaults are returned in that case too.
func (s *Store) LoadAppPreferences(ctx context.Context) (domain.AppPreferences, bool) {
	prefs := domain.DefaultAppPreferences()
	found, ok := s.get(ctx, keyAppPreferences, &prefs, "Error loading app settings")
	if !ok {
		return domain.DefaultAppPreferences(), false
	}
	if !found {
		return domain.DefaultAppPreferences(), true
	}
	if err := prefs.Validate(); err != nil {
		s.Logger.Error("Error loading app settings", err, map[string]interface{}{"key": keyAppPreferences})
		return domain.DefaultAppPreferences(), false
	}
	return prefs, true
}

// UpdateAppPreferences loads the preferences, applies mutate and saves the result.
func (s *Store) UpdateAppPreferences(ctx context.Context, mutate func(*domain.AppPreferences)) (domain.AppPreferences, bool) {
	prefs, _ := s.LoadAppPreferences(ctx)
	mutate(&prefs)
	return prefs, s.SaveAppPreferences(ctx, prefs)
}

func (s *Store) put(ctx context.Context, key string, value interface{}, msg string) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		s.Logger.Error(msg, err, map[string]interface{}{"key": key})
		return false
	}
	if err := s.KV.SetItem(ctx, key, string(raw)); err != nil {
		s.Logger.Error(msg, err, map[string]interface{}{"key": key})
		return false
	}
	return true
}

// get decodes key into dst. found is false when the key is absent; ok is false
// when reading or decoding failed.
func (s *Store) get(ctx context.Context, key string, dst interface{}, msg string) (found, ok bool) {
	raw, found, err := s.KV.GetItem(ctx, key)
	if err != nil {
		s.Logger.Error(msg, err, map[string]interface{}{"key": key})
		return false, false
	}
	if !found {
		return false, true
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.Logger.Error(msg, err, map[string]interface{}{"key": key})
		return true, false
	}
	return true, true
}
