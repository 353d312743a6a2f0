// Package domain defines core entities and pure calculations for SleepSync.
//
// The domain layer holds the sleep plan, preference and history records, the
// bedtime calculator and the validation rules shared by every store. It does
// not depend on storage, CLI or platform collaborators.
package domain

import (
	"fmt"
	"math"
	"time"
)

// WindDown is the wind-down buffer before bedtime, in minutes.
type WindDown int

// Allowed wind-down lengths.
const (
	WindDown15 WindDown = 15
	WindDown30 WindDown = 30
	WindDown45 WindDown = 45
	WindDown60 WindDown = 60
)

// WindDownOptions lists every accepted wind-down length in ascending order.
var WindDownOptions = []WindDown{WindDown15, WindDown30, WindDown45, WindDown60}

// Duration converts the wind-down to a time.Duration.
func (w WindDown) Duration() time.Duration {
	return time.Duration(w) * time.Minute
}

// Valid reports whether w is one of WindDownOptions.
func (w WindDown) Valid() bool {
	for _, opt := range WindDownOptions {
		if w == opt {
			return true
		}
	}
	return false
}

// ParseWindDown converts minutes to a WindDown, rejecting unsupported lengths.
func ParseWindDown(minutes int) (WindDown, error) {
	w := WindDown(minutes)
	if !w.Valid() {
		return 0, fmt.Errorf("wind-down must be one of 15, 30, 45, 60 minutes, got %d", minutes)
	}
	return w, nil
}

// SleepPlan is the triple driving one bedtime calculation.
type SleepPlan struct {
	WakeUpTime     time.Time `json:"wakeUpTime" validate:"required"`
	SleepDuration  float64   `json:"sleepDuration" validate:"gte=6,lte=10"`
	WindDownPeriod WindDown  `json:"windDownPeriod" validate:"oneof=15 30 45 60"`
}

// Times computes the bedtime and wind-down start for the plan.
func (p SleepPlan) Times() SleepTimes {
	return CalculateSleepTimes(p.WakeUpTime, p.SleepDuration, p.WindDownPeriod)
}

// Validate checks range and granularity rules.
func (p SleepPlan) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid sleep plan: %w", err)
	}
	return ValidateSleepDuration(p.SleepDuration)
}

// ValidateSleepDuration ensures hours is a quarter-hour multiple inside [6,10].
func ValidateSleepDuration(hours float64) error {
	if hours < MinSleepDuration || hours > MaxSleepDuration {
		return fmt.Errorf("sleep duration must be between %g and %g hours, got %g", MinSleepDuration, MaxSleepDuration, hours)
	}
	steps := hours / SleepDurationStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("sleep duration must be a multiple of %g hours, got %g", SleepDurationStep, hours)
	}
	return nil
}

// RoundToQuarterHour rounds hours to the nearest quarter hour.
func RoundToQuarterHour(hours float64) float64 {
	return math.Round(hours*4) / 4
}
