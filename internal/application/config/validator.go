package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/sleepsync/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateHealth(cfg.Health); err != nil {
		return err
	}
	if err := validateNotifications(cfg.Notifications); err != nil {
		return err
	}
	if err := validateLockdown(cfg.Lockdown); err != nil {
		return err
	}
	return validateLogging(cfg.Logging)
}

func validateStorage(storage domain.StorageSettings) error {
	switch storage.Backend {
	case domain.StorageSQLite, domain.StorageFile:
		if storage.Path == "" {
			return fmt.Errorf("storage.path must be set for backend %s", storage.Backend)
		}
	case domain.StorageMemory:
	default:
		return fmt.Errorf("storage.backend must be sqlite|file|memory, got %s", storage.Backend)
	}
	return nil
}

func validateHealth(health domain.HealthSettings) error {
	switch health.Provider {
	case domain.HealthProviderNone:
	case domain.HealthProviderHealthKit, domain.HealthProviderHealthConnect:
		if health.ExportFile == "" {
			return fmt.Errorf("health.export_file must be set for provider %s", health.Provider)
		}
	default:
		return fmt.Errorf("health.provider must be none|healthkit|healthconnect, got %s", health.Provider)
	}
	if health.LookbackDays <= 0 {
		return errors.New("health.lookback_days must be > 0")
	}
	return nil
}

func validateNotifications(n domain.NotificationSettings) error {
	if n.Enabled && strings.TrimSpace(n.Message) == "" {
		return errors.New("notifications.message must not be empty when notifications are enabled")
	}
	return nil
}

func validateLockdown(l domain.LockdownSettings) error {
	for _, app := range l.BlockedApps {
		if strings.TrimSpace(app) == "" {
			return errors.New("lockdown.blocked_apps entries cannot be empty")
		}
	}
	return nil
}

func validateLogging(l domain.LoggingSettings) error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", l.Level)
	}
}
