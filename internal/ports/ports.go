// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application services (settings, history, planner) depend only on these
// abstractions. Concrete adapters live under internal/infrastructure: the
// key/value stores, the health-data bridges, the notification scheduler and the
// app blocker. Platform capabilities are reached exclusively through these
// interfaces so that business logic never branches on the platform.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/sleepsync/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.sleepsync/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore is a durable string-keyed blob store. GetItem reports absence
// through its bool result rather than an error.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// HealthBridge imports sleep sessions recorded by a wearable or the platform
// health store.
type HealthBridge interface {
	Name() string
	RequestPermission(ctx context.Context) bool
	FetchSleepSessions(ctx context.Context, since time.Time) ([]domain.SleepSession, error)
}

// NotificationScheduler queues local reminders.
type NotificationScheduler interface {
	ScheduleAt(ctx context.Context, at time.Time, message string) error
	CancelAll(ctx context.Context) error
	Pending(ctx context.Context) ([]domain.ScheduledNotification, error)
}

// AppBlocker requests screen-time blocking for a set of apps. It is best-effort:
// false means the request was not honoured.
type AppBlocker interface {
	SetBlockingWindow(ctx context.Context, apps []string, start, end time.Time) bool
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
