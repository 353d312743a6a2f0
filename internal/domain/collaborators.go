package domain

import "time"

// SleepSession is a sleep sample reported by a health-data bridge. Value is
// the vendor's raw sleep value (a stage or quality score as text).
type SleepSession struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value string    `json:"value"`
}

// Duration returns the session length.
func (s SleepSession) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// ScheduledNotification is a pending local reminder.
type ScheduledNotification struct {
	ID      string    `json:"id"`
	FireAt  time.Time `json:"fireAt"`
	Message string    `json:"message"`
}

// BlockingWindow is an app-blocking period requested in lockdown mode.
type BlockingWindow struct {
	Apps  []string  `json:"apps"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Active reports whether at falls inside the window.
func (w BlockingWindow) Active(at time.Time) bool {
	return !at.Before(w.Start) && at.Before(w.End)
}
