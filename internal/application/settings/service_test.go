package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/infrastructure/kv"
	"github.com/doeshing/sleepsync/internal/pkg/logger"
)

func newObservedStore(t *testing.T) (*Store, *kv.MemoryStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mem := kv.NewMemoryStore()
	return NewStore(mem, logger.Wrap(zap.New(core))), mem, logs
}

func TestLoadAppPreferencesDefaultsWhenEmpty(t *testing.T) {
	store, _, logs := newObservedStore(t)

	prefs, ok := store.LoadAppPreferences(context.Background())
	if !ok {
		t.Fatal("LoadAppPreferences() reported failure on empty storage")
	}
	if diff := cmp.Diff(domain.DefaultAppPreferences(), prefs); diff != "" {
		t.Errorf("LoadAppPreferences() mismatch (-want +got):\n%s", diff)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no log output, got %d entries", logs.Len())
	}
}

func TestAppPreferencesRoundTrip(t *testing.T) {
	store, _, _ := newObservedStore(t)
	ctx := context.Background()

	want := domain.DefaultAppPreferences()
	want.Use24HourFormat = true
	want.Theme = domain.ThemeDark
	want.DefaultSleepDuration = 7.5
	want.DefaultWindDownPeriod = domain.WindDown45
	want.WindDownReminderTime = &domain.TimeOfDay{Hour: 22, Minute: 15}

	if !store.SaveAppPreferences(ctx, want) {
		t.Fatal("SaveAppPreferences() = false")
	}
	got, ok := store.LoadAppPreferences(ctx)
	if !ok {
		t.Fatal("LoadAppPreferences() = false")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSleepPlanRoundTrip(t *testing.T) {
	store, _, _ := newObservedStore(t)
	ctx := context.Background()

	if _, found := store.LoadSleepPlan(ctx); found {
		t.Fatal("LoadSleepPlan() found a plan in empty storage")
	}

	want := domain.SleepPlan{
		WakeUpTime:     time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC),
		SleepDuration:  8,
		WindDownPeriod: domain.WindDown30,
	}
	if !store.SaveSleepPlan(ctx, want) {
		t.Fatal("SaveSleepPlan() = false")
	}
	got, found := store.LoadSleepPlan(ctx)
	if !found {
		t.Fatal("LoadSleepPlan() = absent after save")
	}
	if !got.WakeUpTime.Equal(want.WakeUpTime) || got.SleepDuration != want.SleepDuration || got.WindDownPeriod != want.WindDownPeriod {
		t.Errorf("LoadSleepPlan() = %+v, want %+v", got, want)
	}
}

func TestSaveSleepPlanRejectsInvalid(t *testing.T) {
	store, mem, logs := newObservedStore(t)
	ctx := context.Background()

	plan := domain.SleepPlan{
		WakeUpTime:     time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC),
		SleepDuration:  11,
		WindDownPeriod: domain.WindDown30,
	}
	if store.SaveSleepPlan(ctx, plan) {
		t.Fatal("SaveSleepPlan() accepted an out-of-range duration")
	}
	if _, found, _ := mem.GetItem(ctx, keySleepPlan); found {
		t.Error("invalid plan was written")
	}
	if logs.FilterMessage("Error saving sleep settings").Len() != 1 {
		t.Error("expected the rejection to be logged")
	}
}

func TestCorruptRecordsAreAbsent(t *testing.T) {
	store, mem, logs := newObservedStore(t)
	ctx := context.Background()

	_ = mem.SetItem(ctx, keySleepPlan, "{not json")
	_ = mem.SetItem(ctx, keyAppPreferences, "[]")

	if _, found := store.LoadSleepPlan(ctx); found {
		t.Error("LoadSleepPlan() returned a plan for corrupt data")
	}
	prefs, ok := store.LoadAppPreferences(ctx)
	if ok {
		t.Error("LoadAppPreferences() reported success for corrupt data")
	}
	if diff := cmp.Diff(domain.DefaultAppPreferences(), prefs); diff != "" {
		t.Errorf("expected defaults for corrupt data (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("Error loading sleep settings").Len() != 1 {
		t.Error("corrupt plan not logged")
	}
	if logs.FilterMessage("Error loading app settings").Len() != 1 {
		t.Error("corrupt preferences not logged")
	}
}

func TestStorageFailuresAreAbsorbed(t *testing.T) {
	failing := failingKV{err: errors.New("disk full")}
	core, logs := observer.New(zap.DebugLevel)
	store := NewStore(failing, logger.Wrap(zap.New(core)))
	ctx := context.Background()

	if store.SaveAppPreferences(ctx, domain.DefaultAppPreferences()) {
		t.Error("SaveAppPreferences() = true on failing storage")
	}
	if _, found := store.LoadSleepPlan(ctx); found {
		t.Error("LoadSleepPlan() found a plan on failing storage")
	}
	if prefs, ok := store.LoadAppPreferences(ctx); ok || prefs.Theme != domain.ThemeSystem {
		t.Errorf("LoadAppPreferences() = %+v, %v", prefs, ok)
	}
	if logs.FilterLevelExact(zap.ErrorLevel).Len() != 3 {
		t.Errorf("expected 3 error logs, got %d", logs.FilterLevelExact(zap.ErrorLevel).Len())
	}
}

func TestUpdateAppPreferences(t *testing.T) {
	store, _, _ := newObservedStore(t)
	ctx := context.Background()

	prefs, ok := store.UpdateAppPreferences(ctx, func(p *domain.AppPreferences) {
		p.LockdownMode = true
	})
	if !ok || !prefs.LockdownMode {
		t.Fatalf("UpdateAppPreferences() = %+v, %v", prefs, ok)
	}
	got, _ := store.LoadAppPreferences(ctx)
	if !got.LockdownMode || got.DefaultSleepDuration != domain.DefaultSleepDuration {
		t.Errorf("stored preferences = %+v", got)
	}
}

type failingKV struct {
	err error
}

func (f failingKV) GetItem(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) SetItem(context.Context, string, string) error         { return f.err }
func (f failingKV) RemoveItem(context.Context, string) error              { return f.err }

func TestOutOfRangeRecordsFallBack(t *testing.T) {
	tests := []struct {
		name  string
		prefs string
	}{
		{name: "unknown theme", prefs: `{"theme":"neon","defaultSleepDuration":8,"defaultWindDownPeriod":30}`},
		{name: "unsupported wind-down", prefs: `{"theme":"dark","defaultSleepDuration":8,"defaultWindDownPeriod":7}`},
		{name: "duration off step", prefs: `{"theme":"dark","defaultSleepDuration":7.1,"defaultWindDownPeriod":30}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mem, logs := newObservedStore(t)
			ctx := context.Background()
			_ = mem.SetItem(ctx, keyAppPreferences, tt.prefs)

			prefs, ok := store.LoadAppPreferences(ctx)
			if ok {
				t.Error("LoadAppPreferences() reported success for an invalid record")
			}
			if diff := cmp.Diff(domain.DefaultAppPreferences(), prefs); diff != "" {
				t.Errorf("expected defaults (-want +got):\n%s", diff)
			}
			if logs.FilterMessage("Error loading app settings").Len() != 1 {
				t.Error("invalid preferences not logged")
			}

			updated, saved := store.UpdateAppPreferences(ctx, func(p *domain.AppPreferences) {
				p.Use24HourFormat = true
			})
			if !saved || !updated.Use24HourFormat || updated.Theme != domain.ThemeSystem {
				t.Errorf("UpdateAppPreferences() = %+v, %v, want a clean record saved", updated, saved)
			}
		})
	}
}

func TestOutOfRangeSleepPlanIsAbsent(t *testing.T) {
	store, mem, logs := newObservedStore(t)
	ctx := context.Background()
	_ = mem.SetItem(ctx, keySleepPlan, `{"wakeUpTime":"2024-03-10T07:00:00Z","sleepDuration":12,"windDownPeriod":30}`)

	if _, found := store.LoadSleepPlan(ctx); found {
		t.Error("LoadSleepPlan() returned a 12 hour plan")
	}
	if logs.FilterMessage("Error loading sleep settings").Len() != 1 {
		t.Error("invalid plan not logged")
	}
}
