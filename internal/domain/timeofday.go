package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock hour and minute without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates and builds a TimeOfDay.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// TimeOfDayOf extracts the wall-clock part of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// String renders the value as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On places the time of day on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// NextOccurrence returns the first instant at t that is strictly after now.
func (t TimeOfDay) NextOccurrence(now time.Time) time.Time {
	at := t.On(now)
	if !at.After(now) {
		at = t.On(now.AddDate(0, 0, 1))
	}
	return at
}

// MarshalJSON encodes as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts any form understood by ParseTime.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTime reads a time of day in 24-hour ("23:00") or 12-hour ("11:00 PM") form.
func ParseTime(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{Clock24Format, Clock12Format, "3:04 PM", "15:04:05"} {
		if parsed, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return TimeOfDayOf(parsed), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("unrecognised time %q, expected HH:MM or HH:MM AM/PM", s)
}
