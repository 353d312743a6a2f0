package health

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

// healthKitSample is one SleepAnalysis sample as exported from Apple Health.
type healthKitSample struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Value     string    `json:"value"`
}

// HealthKitBridge reads SleepAnalysis samples from an Apple Health JSON export.
type HealthKitBridge struct {
	path   string
	logger ports.Logger
}

// NewHealthKitBridge builds a bridge over the export at path.
func NewHealthKitBridge(path string, log ports.Logger) *HealthKitBridge {
	return &HealthKitBridge{path: path, logger: log}
}

func (b *HealthKitBridge) Name() string { return string(domain.HealthProviderHealthKit) }

// RequestPermission is granted when the export is readable.
func (b *HealthKitBridge) RequestPermission(context.Context) bool {
	if err := checkReadable(b.path); err != nil {
		b.logger.Error("HealthKit permission error", err, map[string]interface{}{"path": b.path})
		return false
	}
	return true
}

// FetchSleepSessions returns samples starting at or after since, keeping the
// sample value as reported.
func (b *HealthKitBridge) FetchSleepSessions(_ context.Context, since time.Time) ([]domain.SleepSession, error) {
	var samples []healthKitSample
	if err := readJSON(b.path, &samples); err != nil {
		return nil, fmt.Errorf("fetch healthkit sleep samples: %w", err)
	}
	sessions := make([]domain.SleepSession, 0, len(samples))
	for _, s := range samples {
		if s.StartDate.Before(since) {
			continue
		}
		sessions = append(sessions, domain.SleepSession{Start: s.StartDate, End: s.EndDate, Value: s.Value})
	}
	return sessions, nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

var _ ports.HealthBridge = (*HealthKitBridge)(nil)
