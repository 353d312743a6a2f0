package doctor

import (
	"context"
	"fmt"

	configvalidator "github.com/doeshing/sleepsync/internal/application/config"
	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

const storageCheckKey = "sleepsync:doctor-check"

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	KV             ports.KeyValueStore
	HealthBridge   ports.HealthBridge
	Scheduler      ports.NotificationScheduler
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configvalidator.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, s.storageCheck(ctx, cfg.Storage))
	checks = append(checks, s.healthCheck(ctx))
	checks = append(checks, s.notificationCheck(ctx, cfg.Notifications))

	if cfg.Lockdown.Enabled {
		checks = append(checks, ok("Lockdown", fmt.Sprintf("%d apps configured", len(cfg.Lockdown.BlockedApps))))
	} else {
		checks = append(checks, warn("Lockdown", "app blocking disabled in config"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) storageCheck(ctx context.Context, storage domain.StorageSettings) domain.HealthCheck {
	if s.KV == nil {
		return warn("Storage", "store not initialized")
	}
	if err := s.KV.SetItem(ctx, storageCheckKey, "ok"); err != nil {
		return fail("Storage", fmt.Sprintf("write failed: %v", err))
	}
	v, found, err := s.KV.GetItem(ctx, storageCheckKey)
	_ = s.KV.RemoveItem(ctx, storageCheckKey)
	if err != nil || !found || v != "ok" {
		return fail("Storage", fmt.Sprintf("read-back failed: %v", err))
	}
	return ok("Storage", fmt.Sprintf("%s at %s", storage.Backend, storage.Path))
}

func (s *Service) healthCheck(ctx context.Context) domain.HealthCheck {
	if s.HealthBridge == nil || s.HealthBridge.Name() == string(domain.HealthProviderNone) {
		return warn("Health data", "no provider configured")
	}
	if !s.HealthBridge.RequestPermission(ctx) {
		return warn("Health data", fmt.Sprintf("%s permission refused", s.HealthBridge.Name()))
	}
	return ok("Health data", fmt.Sprintf("%s ready", s.HealthBridge.Name()))
}

func (s *Service) notificationCheck(ctx context.Context, n domain.NotificationSettings) domain.HealthCheck {
	if !n.Enabled {
		return warn("Notifications", "disabled in config")
	}
	if s.Scheduler == nil {
		return warn("Notifications", "scheduler not initialized")
	}
	pending, err := s.Scheduler.Pending(ctx)
	if err != nil {
		return fail("Notifications", err.Error())
	}
	return ok("Notifications", fmt.Sprintf("%d pending", len(pending)))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
