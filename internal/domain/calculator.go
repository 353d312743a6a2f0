package domain

import (
	"math"
	"time"
)

// SleepTimes is the output of CalculateSleepTimes.
type SleepTimes struct {
	Bedtime       time.Time
	WindDownStart time.Time
}

// CalculateSleepTimes subtracts the sleep duration from the wake-up instant to
// get the bedtime, and the wind-down length from the bedtime to get the
// wind-down start. Subtraction is on absolute instants, so crossing midnight
// lands on the previous calendar day.
func CalculateSleepTimes(wakeUp time.Time, sleepHours float64, windDown WindDown) SleepTimes {
	bedtime := wakeUp.Add(-HoursToDuration(sleepHours))
	return SleepTimes{
		Bedtime:       bedtime,
		WindDownStart: bedtime.Add(-windDown.Duration()),
	}
}

// HoursToDuration converts fractional hours to a Duration rounded to the millisecond.
func HoursToDuration(hours float64) time.Duration {
	ms := math.Round(hours * float64(time.Hour/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// FormatTime renders t as "15:04" or "03:04 PM" depending on use24Hour.
func FormatTime(t time.Time, use24Hour bool) string {
	if use24Hour {
		return t.Format(Clock24Format)
	}
	return t.Format(Clock12Format)
}

// OptimizeForCycles snaps hours to the nearest whole number of sleep cycles
// that still falls inside [MinSleepDuration, MaxSleepDuration]. Ties go to the
// longer sleep.
func OptimizeForCycles(hours float64) float64 {
	cycle := SleepCycleLength.Hours()
	minCycles := int(math.Ceil(MinSleepDuration / cycle))
	maxCycles := int(math.Floor(MaxSleepDuration / cycle))

	best := float64(minCycles) * cycle
	for n := minCycles; n <= maxCycles; n++ {
		candidate := float64(n) * cycle
		if math.Abs(candidate-hours) <= math.Abs(best-hours) {
			best = candidate
		}
	}
	return best
}
