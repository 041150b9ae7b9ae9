package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

type message struct {
	topic   string
	qos     int
	payload []byte
}

type fakePublisher struct {
	sent []message
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, qos int, _ bool, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, message{topic: topic, qos: qos, payload: payload})
	return nil
}

func TestMQTTNotifierTopics(t *testing.T) {
	at := time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		event     model.InventoryEvent
		wantTopic string
	}{
		{
			event:     model.InventoryEvent{Type: model.EventLoaded, Count: 3, Time: at},
			wantTopic: "garage/v1/inventory/loaded/all",
		},
		{
			event:     model.InventoryEvent{Type: model.EventRemoved, VehicleID: 12, Count: 2, Time: at},
			wantTopic: "garage/v1/inventory/removed/12",
		},
		{
			event:     model.InventoryEvent{Type: model.EventUploadFailed, VehicleID: 7, Count: 2, Error: "status 413", Time: at},
			wantTopic: "garage/v1/inventory/upload-failed/7",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.Type), func(t *testing.T) {
			pub := &fakePublisher{}
			n := NewPublisherNotifier(pub, "garage/v1", 1)

			if err := n.Notify(context.Background(), &tt.event); err != nil {
				t.Fatalf("Notify: %v", err)
			}
			if len(pub.sent) != 1 {
				t.Fatalf("sent %d messages", len(pub.sent))
			}
			msg := pub.sent[0]
			if msg.topic != tt.wantTopic || msg.qos != 1 {
				t.Errorf("published to %s qos %d, want %s qos 1", msg.topic, msg.qos, tt.wantTopic)
			}

			var got model.InventoryEvent
			if err := json.Unmarshal(msg.payload, &got); err != nil {
				t.Fatal(err)
			}
			if !got.Time.Equal(tt.event.Time) {
				t.Errorf("time = %v, want %v", got.Time, tt.event.Time)
			}
			got.Time = tt.event.Time
			if got != tt.event {
				t.Errorf("payload = %+v, want %+v", got, tt.event)
			}
		})
	}
}

func TestMQTTNotifierPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("not connected")}
	n := NewPublisherNotifier(pub, "garage/v1", 0)

	err := n.Notify(context.Background(), &model.InventoryEvent{Type: model.EventCreated, VehicleID: 1})
	if err == nil || !errors.Is(err, pub.err) {
		t.Errorf("err = %v", err)
	}
	n.Close(context.Background())
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier()
	if err := n.Notify(context.Background(), &model.InventoryEvent{Type: model.EventLoaded, Error: "x"}); err != nil {
		t.Errorf("Notify: %v", err)
	}
}
