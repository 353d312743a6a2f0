package domain

import "fmt"

// ThemeMode selects the colour scheme.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Valid reports whether the theme is one of the known modes.
func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// AppPreferences is the singleton record of app-wide settings.
type AppPreferences struct {
	Use24HourFormat       bool       `json:"use24HourFormat"`
	Theme                 ThemeMode  `json:"theme" validate:"theme"`
	OptimizeSleepCycles   bool       `json:"optimizeSleepCycles"`
	DefaultSleepDuration  float64    `json:"defaultSleepDuration" validate:"gte=6,lte=10"`
	DefaultWindDownPeriod WindDown   `json:"defaultWindDownPeriod" validate:"oneof=15 30 45 60"`
	EnableWatchTracking   bool       `json:"enableWatchTracking"`
	LockdownMode          bool       `json:"lockdownMode"`
	WindDownReminderTime  *TimeOfDay `json:"windDownReminderTime"`
}

// DefaultAppPreferences returns the record used before anything is saved.
func DefaultAppPreferences() AppPreferences {
	return AppPreferences{
		Use24HourFormat:       false,
		Theme:                 ThemeSystem,
		OptimizeSleepCycles:   false,
		DefaultSleepDuration:  DefaultSleepDuration,
		DefaultWindDownPeriod: DefaultWindDown,
		EnableWatchTracking:   false,
		LockdownMode:          false,
		WindDownReminderTime:  nil,
	}
}

// Validate checks every field against its allowed range.
func (p AppPreferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return ValidateSleepDuration(p.DefaultSleepDuration)
}
