// Package notifier holds the adapters that receive inventory events.
package notifier

import (
	"context"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/pkg/log"
)

var _ core.EventNotifier = (*LogNotifier)(nil)

// LogNotifier writes events to the structured log at debug level. It is used
// when no broker is configured.
type LogNotifier struct {
	logger log.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.WithName("events")}
}

func (n *LogNotifier) Notify(_ context.Context, event *model.InventoryEvent) error {
	kv := []any{"type", event.Type, "count", event.Count}
	if event.VehicleID != 0 {
		kv = append(kv, "id", event.VehicleID)
	}
	if event.Error != "" {
		kv = append(kv, "error", event.Error)
	}
	n.logger.Debug("Inventory event", kv...)
	return nil
}
