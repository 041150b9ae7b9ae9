package core

import (
	"context"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

// EventNotifier publishes inventory change events to the outside world.
// Implementations are adapters (MQTT, log); failures never affect the
// operation that produced the event.
type EventNotifier interface {
	Notify(ctx context.Context, event *model.InventoryEvent) error
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, *model.InventoryEvent) error { return nil }
