package helpers

import (
	"fmt"
	"os"

	"github.com/doeshing/sleepsync/internal/app"
	configapp "github.com/doeshing/sleepsync/internal/application/config"
	"github.com/doeshing/sleepsync/internal/domain"
	configinfra "github.com/doeshing/sleepsync/internal/infrastructure/config"
)

// GetConfigLoader extracts the config loader from container with error handling
func GetConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// SaveConfigWithValidation validates and saves configuration with automatic backup
func SaveConfigWithValidation(container *app.Container, cfg domain.Config) error {
	loader, err := GetConfigLoader(container)
	if err != nil {
		return err
	}

	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := createBackupIfExists(loader); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	return nil
}

// createBackupIfExists creates a backup of the config file if it exists
func createBackupIfExists(loader *configinfra.FileLoader) error {
	if _, err := os.Stat(loader.Path()); err == nil {
		if _, err := loader.Backup(); err != nil {
			return fmt.Errorf("failed to create configuration backup: %w", err)
		}
	}
	return nil
}
