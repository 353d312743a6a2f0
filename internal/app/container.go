package app

import (
	"context"

	configvalidator "github.com/doeshing/sleepsync/internal/application/config"
	"github.com/doeshing/sleepsync/internal/application/doctor"
	"github.com/doeshing/sleepsync/internal/application/history"
	"github.com/doeshing/sleepsync/internal/application/planner"
	"github.com/doeshing/sleepsync/internal/application/settings"
	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/infrastructure/config"
	"github.com/doeshing/sleepsync/internal/infrastructure/health"
	"github.com/doeshing/sleepsync/internal/infrastructure/kv"
	"github.com/doeshing/sleepsync/internal/infrastructure/notify"
	"github.com/doeshing/sleepsync/internal/infrastructure/screentime"
	"github.com/doeshing/sleepsync/internal/pkg/logger"
	"github.com/doeshing/sleepsync/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.ZapLogger
	Store          ports.KeyValueStore
	Settings       *settings.Store
	History        *history.Store
	Planner        *planner.Service
	Scheduler      ports.NotificationScheduler
	Blocker        *screentime.StoreBlocker
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph. configPath may be empty to
// use the default location.
func BuildContainer(ctx context.Context, configPath string, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader(configPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := configvalidator.Validate(cfg); err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level, verbose)
	store, err := kv.NewStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	bridge, err := health.NewBridge(cfg.Health, log)
	if err != nil {
		return nil, err
	}
	clock := ports.SystemClock

	settingsStore := settings.NewStore(store, log)
	historyStore := history.NewStore(store, log)
	historyStore.Health = bridge
	historyStore.LookbackDays = cfg.Health.LookbackDays

	scheduler := notify.NewStoreScheduler(store, clock, cfg.Notifications.Enabled)
	blocker := screentime.NewStoreBlocker(store, log, cfg.Lockdown.Enabled)

	plannerService := &planner.Service{
		Settings:            settingsStore,
		History:             historyStore,
		Scheduler:           scheduler,
		Blocker:             blocker,
		Clock:               clock,
		Logger:              log,
		NotificationMessage: cfg.Notifications.Message,
		BlockedApps:         cfg.Lockdown.BlockedApps,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		KV:             store,
		HealthBridge:   bridge,
		Scheduler:      scheduler,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Store:          store,
		Settings:       settingsStore,
		History:        historyStore,
		Planner:        plannerService,
		Scheduler:      scheduler,
		Blocker:        blocker,
		DoctorService:  doctorService,
	}, nil
}
