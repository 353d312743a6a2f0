package health

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

// healthConnectStageValue is reported for every Health Connect session, which
// carries no per-session score.
const healthConnectStageValue = "4"

// healthConnectSession mirrors a SleepSessionRecord exported from Health Connect.
type healthConnectSession struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
}

// HealthConnectBridge reads sleep sessions from a Health Connect JSON export.
type HealthConnectBridge struct {
	path   string
	logger ports.Logger
}

// NewHealthConnectBridge builds a bridge over the export at path.
func NewHealthConnectBridge(path string, log ports.Logger) *HealthConnectBridge {
	return &HealthConnectBridge{path: path, logger: log}
}

func (b *HealthConnectBridge) Name() string { return string(domain.HealthProviderHealthConnect) }

// RequestPermission is granted when the export is readable.
func (b *HealthConnectBridge) RequestPermission(context.Context) bool {
	if err := checkReadable(b.path); err != nil {
		b.logger.Error("Health Connect permission error", err, map[string]interface{}{"path": b.path})
		return false
	}
	return true
}

// FetchSleepSessions returns sessions starting at or after since.
func (b *HealthConnectBridge) FetchSleepSessions(_ context.Context, since time.Time) ([]domain.SleepSession, error) {
	var records []healthConnectSession
	if err := readJSON(b.path, &records); err != nil {
		return nil, fmt.Errorf("fetch health connect sessions: %w", err)
	}
	sessions := make([]domain.SleepSession, 0, len(records))
	for _, r := range records {
		start, err := time.Parse(time.RFC3339, r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("session start %q: %w", r.StartTime, err)
		}
		end, err := time.Parse(time.RFC3339, r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("session end %q: %w", r.EndTime, err)
		}
		if start.Before(since) {
			continue
		}
		sessions = append(sessions, domain.SleepSession{Start: start, End: end, Value: healthConnectStageValue})
	}
	return sessions, nil
}

var _ ports.HealthBridge = (*HealthConnectBridge)(nil)
