package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/sleepsync/internal/domain"
)

// WithWatchSessions returns the saved history followed by entries built from
// the health bridge's recent sleep sessions. Imported entries are not saved
// and are not deduplicated against saved plans covering the same night. When
// watch tracking is off, no bridge is configured, permission is refused or the
// fetch fails, the saved history is returned alone.
func (s *Store) WithWatchSessions(ctx context.Context, prefs domain.AppPreferences) []domain.HistoryEntry {
	saved := s.Load(ctx)
	if !prefs.EnableWatchTracking || s.Health == nil {
		return saved
	}
	fields := map[string]interface{}{"bridge": s.Health.Name()}
	if !s.Health.RequestPermission(ctx) {
		s.Logger.Warn("health permission not granted", fields)
		return saved
	}

	lookback := s.LookbackDays
	if lookback <= 0 {
		lookback = domain.DefaultHealthLookbackDays
	}
	since := s.Clock.Now().AddDate(0, 0, -lookback)
	sessions, err := s.Health.FetchSleepSessions(ctx, since)
	if err != nil {
		s.Logger.Error("Failed to load watch data", err, fields)
		return saved
	}
	return append(saved, WatchEntries(sessions)...)
}

// WatchEntries maps health-bridge sessions to history entries. The session end
// is both the creation time and the wake-up time; the duration is rounded to
// the nearest quarter hour and the wind-down is fixed.
func WatchEntries(sessions []domain.SleepSession) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, 0, len(sessions))
	for i, session := range sessions {
		entries = append(entries, domain.HistoryEntry{
			ID:        fmt.Sprintf("%s%d-%d", domain.WatchEntryIDPrefix, session.Start.UnixMilli(), i),
			CreatedAt: session.End,
			SleepPlan: domain.SleepPlan{
				WakeUpTime:     session.End,
				SleepDuration:  domain.RoundToQuarterHour(session.Duration().Hours()),
				WindDownPeriod: domain.DefaultWatchWindDown,
			},
			Watch: &domain.WatchData{
				Start:   session.Start,
				End:     session.End,
				Quality: parseWatchQuality(session.Value),
			},
		})
	}
	return entries
}

// parseWatchQuality reads the leading digits of value as a quality score.
// Values without leading digits or outside the 1-5 scale mean no score.
func parseWatchQuality(value string) *int {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil || n < domain.MinQuality || n > domain.MaxQuality {
		return nil
	}
	return &n
}
