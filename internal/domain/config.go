package domain

// Config mirrors ~/.sleepsync/config.yaml.
type Config struct {
	ConfigFormatVersion string               `yaml:"config_format_version"`
	Storage             StorageSettings      `yaml:"storage"`
	Health              HealthSettings       `yaml:"health"`
	Notifications       NotificationSettings `yaml:"notifications"`
	Lockdown            LockdownSettings     `yaml:"lockdown"`
	Logging             LoggingSettings      `yaml:"logging"`
}

// StorageBackend names a key/value persistence adapter.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageFile   StorageBackend = "file"
	StorageMemory StorageBackend = "memory"
)

// StorageSettings selects where preferences, the last plan and history live.
type StorageSettings struct {
	Backend StorageBackend `yaml:"backend"`
	// Path is the sqlite database file or, for the file backend, a directory.
	Path string `yaml:"path"`
}

// HealthProvider names a health-data bridge implementation.
type HealthProvider string

const (
	HealthProviderNone          HealthProvider = "none"
	HealthProviderHealthKit     HealthProvider = "healthkit"
	HealthProviderHealthConnect HealthProvider = "healthconnect"
)

// HealthSettings configures watch-session import.
type HealthSettings struct {
	Provider     HealthProvider `yaml:"provider"`
	ExportFile   string         `yaml:"export_file"`
	LookbackDays int            `yaml:"lookback_days"`
}

// NotificationSettings configures wind-down reminders.
type NotificationSettings struct {
	Enabled bool   `yaml:"enabled"`
	Message string `yaml:"message"`
}

// LockdownSettings configures app blocking.
type LockdownSettings struct {
	Enabled     bool     `yaml:"enabled"`
	BlockedApps []string `yaml:"blocked_apps"`
}

// LoggingSettings controls log verbosity.
type LoggingSettings struct {
	Level string `yaml:"level"`
}
