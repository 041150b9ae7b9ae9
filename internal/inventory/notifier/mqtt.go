package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	pkgmqtt "github.com/autopeer-io/inventory/pkg/mqtt"
	"github.com/autopeer-io/inventory/pkg/mqtt/topic"
	"github.com/autopeer-io/inventory/pkg/options"
)

var _ core.EventNotifier = (*MQTTNotifier)(nil)

// MQTTNotifier publishes every InventoryEvent as JSON to
// {root}/inventory/{type}/{vehicleID|all}.
type MQTTNotifier struct {
	publisher pkgmqtt.Publisher
	topics    *topic.TopicBuilder
	qos       int
	// stop is nil when the publisher is not owned by the notifier.
	stop func(ctx context.Context)
}

// NewMQTTNotifier connects a dedicated publisher to the configured broker and
// waits until the connection is up or ConnectTimeout elapses.
func NewMQTTNotifier(ctx context.Context, opts *options.MqttOptions) (*MQTTNotifier, error) {
	cfg := opts.ToClientConfig()
	if cfg.ClientID == "" {
		hostname, _ := os.Hostname()
		cfg.ClientID = fmt.Sprintf("cpeer-inventory-%s-%d", hostname, os.Getpid())
	}

	client, err := pkgmqtt.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start mqtt client: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := client.AwaitConnection(waitCtx); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mqtt broker %s not reachable: %w", opts.Broker, err)
	}

	n := NewPublisherNotifier(client, opts.TopicRoot, opts.QoS)
	n.stop = client.Disconnect
	return n, nil
}

// NewPublisherNotifier wraps an existing publisher.
func NewPublisherNotifier(p pkgmqtt.Publisher, root string, qos int) *MQTTNotifier {
	return &MQTTNotifier{
		publisher: p,
		topics:    topic.NewTopicBuilder(root),
		qos:       qos,
	}
}

func (n *MQTTNotifier) Notify(ctx context.Context, event *model.InventoryEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	t := n.topics.Event(string(event.Type), event.VehicleID)
	if err := n.publisher.Publish(ctx, t, n.qos, false, payload); err != nil {
		return fmt.Errorf("publish %s: %w", t, err)
	}
	return nil
}

// Close disconnects the publisher if the notifier created it.
func (n *MQTTNotifier) Close(ctx context.Context) {
	if n.stop != nil {
		n.stop(ctx)
	}
}
