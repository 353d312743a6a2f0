// Package history keeps the capped, newest-first log of saved sleep plans.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

const keyHistory = "sleepsync:sleepHistory"

// Store appends, reads, amends and deletes history entries. Like the settings
// store it never returns storage errors: they are logged and reported as false
// or an empty list.
type Store struct {
	KV     ports.KeyValueStore
	Logger ports.Logger
	Clock  ports.Clock
	Health ports.HealthBridge
	// LookbackDays bounds how far back watch sessions are fetched.
	LookbackDays int
}

// NewStore builds a Store using the system clock and no health bridge.
func NewStore(store ports.KeyValueStore, log ports.Logger) *Store {
	return &Store{
		KV:           store,
		Logger:       log,
		Clock:        ports.SystemClock,
		LookbackDays: domain.DefaultHealthLookbackDays,
	}
}

// Append records plan as a new entry at the head of the history.
func (s *Store) Append(ctx context.Context, plan domain.SleepPlan, extras domain.EntryExtras) bool {
	if err := plan.Validate(); err != nil {
		s.Logger.Error("Error saving sleep history", err, nil)
		return false
	}
	if err := extras.Validate(); err != nil {
		s.Logger.Error("Error saving sleep history", err, nil)
		return false
	}

	entries := s.Load(ctx)
	now := s.Clock.Now()
	entry := domain.HistoryEntry{
		ID:        nextID(now.UnixMilli(), entries),
		CreatedAt: now,
		SleepPlan: plan,
		Quality:   extras.Quality,
		Technique: extras.Technique,
	}
	updated := append([]domain.HistoryEntry{entry}, entries...)
	return s.persist(ctx, updated, "Error saving sleep history")
}

// Load returns the saved entries newest-first. It returns an empty list when
// nothing is stored or the stored value cannot be decoded.
func (s *Store) Load(ctx context.Context) []domain.HistoryEntry {
	raw, found, err := s.KV.GetItem(ctx, keyHistory)
	if err != nil {
		s.Logger.Error("Error loading sleep history", err, nil)
		return []domain.HistoryEntry{}
	}
	if !found {
		return []domain.HistoryEntry{}
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.Logger.Error("Error loading sleep history", err, nil)
		return []domain.HistoryEntry{}
	}
	if entries == nil {
		return []domain.HistoryEntry{}
	}
	return entries
}

// Find returns the saved entry with id.
func (s *Store) Find(ctx context.Context, id string) (domain.HistoryEntry, bool) {
	for _, e := range s.Load(ctx) {
		if e.ID == id {
			return e, true
		}
	}
	return domain.HistoryEntry{}, false
}

// Update merges the non-nil fields of u into the entry with id. An unknown id
// leaves the history untouched.
func (s *Store) Update(ctx context.Context, id string, u domain.EntryUpdate) bool {
	if err := u.Validate(); err != nil {
		s.Logger.Error("Error updating history entry", err, map[string]interface{}{"id": id})
		return false
	}
	entries := s.Load(ctx)
	found := false
	for i := range entries {
		if entries[i].ID == id {
			entries[i] = u.Apply(entries[i])
			found = true
		}
	}
	if !found {
		s.Logger.Debug("history entry not found", map[string]interface{}{"id": id})
		return true
	}
	return s.persist(ctx, entries, "Error updating history entry")
}

// Delete removes the entry with id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) bool {
	entries := s.Load(ctx)
	kept := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		s.Logger.Debug("history entry not found", map[string]interface{}{"id": id})
		return true
	}
	return s.persist(ctx, kept, "Error deleting history entry")
}

// Export writes the saved history to path as an indented JSON array.
func (s *Store) Export(ctx context.Context, path string) error {
	raw, err := json.MarshalIndent(s.Load(ctx), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(raw, '\n'), domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("export history to %s: %w", path, err)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, entries []domain.HistoryEntry, msg string) bool {
	raw, err := json.Marshal(Normalize(entries))
	if err != nil {
		s.Logger.Error(msg, err, nil)
		return false
	}
	if err := s.KV.SetItem(ctx, keyHistory, string(raw)); err != nil {
		s.Logger.Error(msg, err, nil)
		return false
	}
	return true
}

// Normalize orders entries newest-first (ties keep their relative order),
// drops repeated ids keeping the first, and truncates to MaxHistoryEntries.
func Normalize(entries []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > domain.MaxHistoryEntries {
		out = out[:domain.MaxHistoryEntries]
	}
	return out
}

// nextID derives an id from the creation time in milliseconds, moving forward
// one millisecond at a time until it does not clash with an existing entry.
func nextID(ms int64, entries []domain.HistoryEntry) string {
	taken := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		taken[e.ID] = struct{}{}
	}
	for {
		id := strconv.FormatInt(ms, 10)
		if _, clash := taken[id]; !clash {
			return id
		}
		ms++
	}
}
