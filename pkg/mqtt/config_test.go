package mqtt

import (
	"context"
	"testing"
	"time"
)

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *ClientConfig
		wantErr bool
	}{
		{"nil config", nil, true},
		{"missing broker", &ClientConfig{ClientID: "a"}, true},
		{"missing client id", &ClientConfig{BrokerURL: "tcp://localhost:1883"}, true},
		{"broker without host", &ClientConfig{BrokerURL: "localhost", ClientID: "a"}, true},
		{"valid", &ClientConfig{BrokerURL: "tcp://localhost:1883", ClientID: "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetDefaultConfig(t *testing.T) {
	cfg := &ClientConfig{}
	setDefaultConfig(cfg)
	if cfg.KeepAlive != 60 || cfg.ConnectTimeout != 5*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestPublishBeforeStart(t *testing.T) {
	c, err := NewClient(&ClientConfig{BrokerURL: "tcp://localhost:1883", ClientID: "test"})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Publish(context.Background(), "a/b", 1, false, nil); err == nil {
		t.Error("expected error publishing before Start")
	}
}
