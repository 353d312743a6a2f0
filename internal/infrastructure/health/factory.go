// Package health provides the health-data bridges. Exactly one is chosen at
// start-up from configuration; callers only see ports.HealthBridge.
package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

// NewBridge selects the bridge named by settings.Provider.
func NewBridge(settings domain.HealthSettings, log ports.Logger) (ports.HealthBridge, error) {
	switch settings.Provider {
	case domain.HealthProviderNone, "":
		return Unavailable{}, nil
	case domain.HealthProviderHealthKit:
		return NewHealthKitBridge(settings.ExportFile, log), nil
	case domain.HealthProviderHealthConnect:
		return NewHealthConnectBridge(settings.ExportFile, log), nil
	default:
		return nil, fmt.Errorf("unknown health provider %q", settings.Provider)
	}
}

// Unavailable is the bridge used when no health source is configured.
type Unavailable struct{}

func (Unavailable) Name() string                           { return string(domain.HealthProviderNone) }
func (Unavailable) RequestPermission(context.Context) bool { return false }

func (Unavailable) FetchSleepSessions(context.Context, time.Time) ([]domain.SleepSession, error) {
	return nil, errors.New("no health provider configured")
}

var _ ports.HealthBridge = Unavailable{}
