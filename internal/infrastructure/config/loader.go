package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/pkg/filesystem"
	"github.com/doeshing/sleepsync/internal/ports"
)

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "SLEEPSYNC_CONFIG"

// FileLoader loads YAML configuration from ~/.sleepsync/config.yaml (overridable via SLEEPSYNC_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	_ = godotenv.Load()

	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	// Decode over the defaults so keys absent from the file keep their
	// default values. The storage path is left empty for hydrateDefaults,
	// which picks it per backend.
	cfg := DefaultConfig()
	cfg.Storage.Path = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Save writes cfg back to the resolved path.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeDefault(path, cfg)
}

// Backup copies the current config file next to it with a timestamp suffix
// and returns the backup path.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Path resolves the configuration file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Storage: domain.StorageSettings{
			Backend: domain.StorageSQLite,
			Path:    filepath.Join(filesystem.AppDir(), "sleepsync.db"),
		},
		Health: domain.HealthSettings{
			Provider:     domain.HealthProviderNone,
			ExportFile:   filepath.Join(filesystem.AppDir(), "health", "sleep.json"),
			LookbackDays: domain.DefaultHealthLookbackDays,
		},
		Notifications: domain.NotificationSettings{
			Enabled: true,
			Message: "Time to wind down for bed",
		},
		Lockdown: domain.LockdownSettings{
			Enabled:     false,
			BlockedApps: []string{},
		},
		Logging: domain.LoggingSettings{
			Level: "warn",
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := DefaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case domain.StorageFile:
			cfg.Storage.Path = filepath.Join(filesystem.AppDir(), "data")
		default:
			cfg.Storage.Path = def.Storage.Path
		}
	}
	cfg.Storage.Path = filesystem.ExpandHome(cfg.Storage.Path)
	if cfg.Health.Provider == "" {
		cfg.Health.Provider = def.Health.Provider
	}
	if cfg.Health.ExportFile == "" {
		cfg.Health.ExportFile = def.Health.ExportFile
	}
	cfg.Health.ExportFile = filesystem.ExpandHome(cfg.Health.ExportFile)
	if cfg.Health.LookbackDays == 0 {
		cfg.Health.LookbackDays = def.Health.LookbackDays
	}
	if cfg.Notifications.Message == "" {
		cfg.Notifications.Message = def.Notifications.Message
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
