package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/infrastructure/kv"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubBridge struct {
	name    string
	granted bool
}

func (b stubBridge) Name() string                           { return b.name }
func (b stubBridge) RequestPermission(context.Context) bool { return b.granted }

func (b stubBridge) FetchSleepSessions(context.Context, time.Time) ([]domain.SleepSession, error) {
	return nil, nil
}

type stubScheduler struct {
	pending []domain.ScheduledNotification
	err     error
}

func (s stubScheduler) ScheduleAt(context.Context, time.Time, string) error { return nil }
func (s stubScheduler) CancelAll(context.Context) error                     { return nil }

func (s stubScheduler) Pending(context.Context) ([]domain.ScheduledNotification, error) {
	return s.pending, s.err
}

func healthyConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Storage:             domain.StorageSettings{Backend: domain.StorageMemory},
		Health:              domain.HealthSettings{Provider: domain.HealthProviderHealthKit, ExportFile: "/tmp/sleep.json", LookbackDays: 7},
		Notifications:       domain.NotificationSettings{Enabled: true, Message: "wind down"},
		Lockdown:            domain.LockdownSettings{Enabled: true, BlockedApps: []string{"video"}},
		Logging:             domain.LoggingSettings{Level: "warn"},
	}
}

func statusByName(report domain.HealthReport) map[string]domain.HealthStatus {
	out := make(map[string]domain.HealthStatus, len(report.Checks))
	for _, c := range report.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestRunAllHealthy(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: healthyConfig()},
		KV:             kv.NewMemoryStore(),
		HealthBridge:   stubBridge{name: "healthkit", granted: true},
		Scheduler:      stubScheduler{pending: []domain.ScheduledNotification{{ID: "1"}}},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Failed() {
		t.Fatalf("report failed: %+v", report.Checks)
	}
	for name, status := range statusByName(report) {
		if status != domain.HealthOK {
			t.Errorf("%s = %s, want ok", name, status)
		}
	}
	if _, found, _ := svc.KV.GetItem(context.Background(), storageCheckKey); found {
		t.Error("storage check key left behind")
	}
}

func TestRunDegraded(t *testing.T) {
	cfg := healthyConfig()
	cfg.Lockdown.Enabled = false
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		KV:             kv.NewMemoryStore(),
		HealthBridge:   stubBridge{name: "healthkit"},
		Scheduler:      stubScheduler{err: errors.New("decode notifications")},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := statusByName(report)
	want := map[string]domain.HealthStatus{
		"Config file":   domain.HealthOK,
		"Storage":       domain.HealthOK,
		"Health data":   domain.HealthWarn,
		"Notifications": domain.HealthError,
		"Lockdown":      domain.HealthWarn,
	}
	for name, status := range want {
		if got[name] != status {
			t.Errorf("%s = %s, want %s", name, got[name], status)
		}
	}
	if !report.Failed() {
		t.Error("Failed() = false with a failing check")
	}
}

func TestRunConfigLoadError(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfigProvider{err: errors.New("permission denied")}}
	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Errorf("report = %+v", report.Checks)
	}
}
