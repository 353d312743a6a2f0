package domain

import (
	"strings"
	"time"
)

// WatchData is the sleep session imported from a wearable for an entry.
type WatchData struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Quality *int      `json:"quality,omitempty"`
}

// HistoryEntry is one saved (or imported) sleep plan.
type HistoryEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	SleepPlan
	Title     *string    `json:"title,omitempty"`
	Watch     *WatchData `json:"watch,omitempty"`
	Quality   *int       `json:"quality,omitempty"`
	Technique *string    `json:"technique,omitempty"`
}

// FromWatch reports whether the entry came from a health bridge.
func (e HistoryEntry) FromWatch() bool {
	return e.Watch != nil || strings.HasPrefix(e.ID, WatchEntryIDPrefix)
}

// EntryExtras carries the optional review fields supplied when saving a plan.
type EntryExtras struct {
	Quality   *int `validate:"omitempty,gte=1,lte=5"`
	Technique *string
}

// EntryUpdate lists the fields to merge into an existing entry. Nil fields are
// left untouched.
type EntryUpdate struct {
	Title     *string
	Quality   *int `validate:"omitempty,gte=1,lte=5"`
	Technique *string
}

// Validate checks the quality range.
func (x EntryExtras) Validate() error {
	return validate.Struct(x)
}

// Validate checks the quality range.
func (u EntryUpdate) Validate() error {
	return validate.Struct(u)
}

// Apply returns e with the non-nil fields of u merged in.
func (u EntryUpdate) Apply(e HistoryEntry) HistoryEntry {
	if u.Title != nil {
		e.Title = u.Title
	}
	if u.Quality != nil {
		e.Quality = u.Quality
	}
	if u.Technique != nil {
		e.Technique = u.Technique
	}
	return e
}
