// Package planner ties the calculator to the stores and platform collaborators:
// it fills a plan from saved state, computes the bedtime, records saved plans
// and arranges reminders and lockdown windows.
package planner

import (
	"context"
	"time"

	"github.com/doeshing/sleepsync/internal/application/history"
	"github.com/doeshing/sleepsync/internal/application/settings"
	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

// DefaultWakeTime is used when neither the request nor a saved plan gives one.
var DefaultWakeTime = domain.TimeOfDay{Hour: 7, Minute: 0}

// Service orchestrates a planning session.
type Service struct {
	Settings  *settings.Store
	History   *history.Store
	Scheduler ports.NotificationScheduler
	Blocker   ports.AppBlocker
	Clock     ports.Clock
	Logger    ports.Logger

	NotificationMessage string
	BlockedApps         []string
}

// Request holds the user's inputs; nil fields are filled from saved state.
type Request struct {
	WakeTime      *domain.TimeOfDay
	SleepDuration *float64
	WindDown      *domain.WindDown
}

// Result is a computed plan ready for display.
type Result struct {
	Plan  domain.SleepPlan
	Times domain.SleepTimes
	// RequestedDuration is the duration before sleep-cycle optimisation.
	RequestedDuration float64
	CycleAdjusted     bool
	Use24Hour         bool
}

// WakeUp renders the wake-up time.
func (r Result) WakeUp() string { return domain.FormatTime(r.Plan.WakeUpTime, r.Use24Hour) }

// Bedtime renders the bedtime.
func (r Result) Bedtime() string { return domain.FormatTime(r.Times.Bedtime, r.Use24Hour) }

// WindDownStart renders the wind-down start.
func (r Result) WindDownStart() string { return domain.FormatTime(r.Times.WindDownStart, r.Use24Hour) }

// Calculate builds a plan from req, the last saved plan and the preference
// defaults (in that order), computes its times and stores it as the current plan.
func (s *Service) Calculate(ctx context.Context, req Request) (Result, error) {
	prefs, _ := s.Settings.LoadAppPreferences(ctx)
	last, hasLast := s.Settings.LoadSleepPlan(ctx)

	wake := DefaultWakeTime
	duration := prefs.DefaultSleepDuration
	windDown := prefs.DefaultWindDownPeriod
	if hasLast {
		wake = domain.TimeOfDayOf(last.WakeUpTime)
		duration = last.SleepDuration
		windDown = last.WindDownPeriod
	}
	if req.WakeTime != nil {
		wake = *req.WakeTime
	}
	if req.SleepDuration != nil {
		duration = *req.SleepDuration
	}
	if req.WindDown != nil {
		windDown = *req.WindDown
	}

	plan := domain.SleepPlan{
		WakeUpTime:     wake.NextOccurrence(s.Clock.Now()),
		SleepDuration:  duration,
		WindDownPeriod: windDown,
	}
	if err := plan.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{RequestedDuration: duration, Use24Hour: prefs.Use24HourFormat}
	if prefs.OptimizeSleepCycles {
		plan.SleepDuration = domain.OptimizeForCycles(duration)
		result.CycleAdjusted = plan.SleepDuration != duration
	}
	result.Plan = plan
	result.Times = plan.Times()

	s.Settings.SaveSleepPlan(ctx, plan)
	return result, nil
}

// SaveResult reports what Save managed to do.
type SaveResult struct {
	Saved                 bool
	NotificationScheduled bool
	BlockingRequested     bool
	BlockingSet           bool
}

// Save appends plan to the history, schedules the wind-down reminder and, in
// lockdown mode, asks for app blocking from wind-down start until wake-up.
// Collaborator failures are logged and reflected in the result only.
func (s *Service) Save(ctx context.Context, plan domain.SleepPlan, extras domain.EntryExtras) SaveResult {
	var res SaveResult
	res.Saved = s.History.Append(ctx, plan, extras)
	if !res.Saved {
		return res
	}

	times := plan.Times()
	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleAt(ctx, times.WindDownStart, s.NotificationMessage); err != nil {
			s.Logger.Warn("wind-down notification not scheduled", map[string]interface{}{"error": err.Error()})
		} else {
			res.NotificationScheduled = true
		}
	}

	prefs, _ := s.Settings.LoadAppPreferences(ctx)
	if prefs.LockdownMode && s.Blocker != nil {
		res.BlockingRequested = true
		res.BlockingSet = s.Blocker.SetBlockingWindow(ctx, s.BlockedApps, times.WindDownStart, plan.WakeUpTime)
	}
	return res
}

// ReminderResult reports the outcome of SetReminder.
type ReminderResult struct {
	Saved  bool
	NextAt *time.Time
}

// SetReminder stores the daily wind-down reminder time (nil clears it),
// cancels pending notifications and schedules the next occurrence.
func (s *Service) SetReminder(ctx context.Context, at *domain.TimeOfDay) ReminderResult {
	_, saved := s.Settings.UpdateAppPreferences(ctx, func(p *domain.AppPreferences) {
		p.WindDownReminderTime = at
	})
	res := ReminderResult{Saved: saved}
	if s.Scheduler == nil {
		return res
	}
	if err := s.Scheduler.CancelAll(ctx); err != nil {
		s.Logger.Warn("pending notifications not cancelled", map[string]interface{}{"error": err.Error()})
	}
	if at == nil {
		return res
	}
	next := at.NextOccurrence(s.Clock.Now())
	if err := s.Scheduler.ScheduleAt(ctx, next, s.NotificationMessage); err != nil {
		s.Logger.Warn("daily reminder not scheduled", map[string]interface{}{"error": err.Error()})
		return res
	}
	res.NextAt = &next
	return res
}
