// Package notify queues wind-down reminders in the key/value store, where a
// desktop notifier or shell hook can pick them up.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/ports"
)

const keyNotifications = "sleepsync:notifications"

// ErrDisabled is returned by ScheduleAt when notifications are turned off.
var ErrDisabled = errors.New("notifications are disabled")

// StoreScheduler implements ports.NotificationScheduler on a key/value store.
type StoreScheduler struct {
	kv      ports.KeyValueStore
	clock   ports.Clock
	enabled bool
}

// NewStoreScheduler builds a scheduler. When enabled is false ScheduleAt fails
// and nothing is queued.
func NewStoreScheduler(store ports.KeyValueStore, clock ports.Clock, enabled bool) *StoreScheduler {
	return &StoreScheduler{kv: store, clock: clock, enabled: enabled}
}

// ScheduleAt queues message to fire at at.
func (s *StoreScheduler) ScheduleAt(ctx context.Context, at time.Time, message string) error {
	if !s.enabled {
		return ErrDisabled
	}
	pending, err := s.Pending(ctx)
	if err != nil {
		return err
	}
	pending = append(pending, domain.ScheduledNotification{
		ID:      uuid.NewString(),
		FireAt:  at,
		Message: message,
	})
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].FireAt.Before(pending[j].FireAt) })
	return s.write(ctx, pending)
}

// CancelAll drops every queued notification.
func (s *StoreScheduler) CancelAll(ctx context.Context) error {
	return s.kv.RemoveItem(ctx, keyNotifications)
}

// Pending lists notifications that have not fired yet, earliest first.
func (s *StoreScheduler) Pending(ctx context.Context) ([]domain.ScheduledNotification, error) {
	raw, found, err := s.kv.GetItem(ctx, keyNotifications)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.ScheduledNotification{}, nil
	}
	var all []domain.ScheduledNotification
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	now := s.clock.Now()
	pending := make([]domain.ScheduledNotification, 0, len(all))
	for _, n := range all {
		if n.FireAt.After(now) {
			pending = append(pending, n)
		}
	}
	return pending, nil
}

func (s *StoreScheduler) write(ctx context.Context, pending []domain.ScheduledNotification) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return s.kv.SetItem(ctx, keyNotifications, string(raw))
}

var _ ports.NotificationScheduler = (*StoreScheduler)(nil)
