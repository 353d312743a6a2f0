package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for data and config files (rw-------)
	SecureFilePermissions = 0o600
)

// Sleep plan limits
const (
	// MinSleepDuration is the shortest plannable sleep, in hours
	MinSleepDuration = 6.0
	// MaxSleepDuration is the longest plannable sleep, in hours
	MaxSleepDuration = 10.0
	// SleepDurationStep is the granularity of sleep durations, in hours
	SleepDurationStep = 0.25
	// SleepCycleLength is the length of one sleep cycle
	SleepCycleLength = 90 * time.Minute
)

// Preference defaults
const (
	// DefaultSleepDuration is the out-of-the-box target sleep, in hours
	DefaultSleepDuration = 8.0
	// DefaultWindDown is the out-of-the-box wind-down length
	DefaultWindDown = WindDown30
	// DefaultWatchWindDown is the wind-down assigned to entries imported from a watch
	DefaultWatchWindDown = WindDown15
)

// History constants
const (
	// MaxHistoryEntries is the number of saved plans retained
	MaxHistoryEntries = 20
	// DefaultHealthLookbackDays is how far back watch sessions are imported
	DefaultHealthLookbackDays = 7
	// WatchEntryIDPrefix marks history entries built from health-bridge sessions
	WatchEntryIDPrefix = "watch-"
)

// Review limits
const (
	// MinQuality is the lowest user quality rating
	MinQuality = 1
	// MaxQuality is the highest user quality rating
	MaxQuality = 5
)

// Time formats
const (
	// Clock24Format renders a time of day on a 24-hour clock
	Clock24Format = "15:04"
	// Clock12Format renders a time of day on a 12-hour clock
	Clock12Format = "03:04 PM"
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
