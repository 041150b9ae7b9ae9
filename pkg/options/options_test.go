package options

import (
	"testing"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"localhost:6379", false},
		{"0.0.0.0:8443", false},
		{"localhost", true},
		{"localhost:", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://api.example.com", "http", "https"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateURL("ftp://api.example.com", "http", "https"); err == nil {
		t.Error("expected scheme error")
	}
	if err := ValidateURL("/cars/", "http"); err == nil {
		t.Error("expected missing host error")
	}
}

func TestOptionGroupsDefaultsAreValid(t *testing.T) {
	groups := map[string]IOptions{
		"api":     NewApiOptions(),
		"cache":   NewCacheOptions(),
		"s3":      NewS3Options(),
		"mqtt":    NewMqttOptions(),
		"metrics": NewMetricsOptions(),
	}
	for name, o := range groups {
		if errs := o.Validate(); len(errs) != 0 {
			t.Errorf("%s defaults invalid: %v", name, errs)
		}
	}
}

func TestCacheOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *CacheOptions)
		wantErr int
	}{
		{"sqlite default", func(o *CacheOptions) {}, 0},
		{"sqlite without path", func(o *CacheOptions) { o.Path = "" }, 1},
		{"redis", func(o *CacheOptions) { o.Driver = CacheDriverRedis }, 0},
		{"redis bad addr", func(o *CacheOptions) { o.Driver = CacheDriverRedis; o.RedisAddr = "nope" }, 1},
		{"memory", func(o *CacheOptions) { o.Driver = CacheDriverMemory; o.Path = "" }, 0},
		{"unknown driver", func(o *CacheOptions) { o.Driver = "bolt" }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewCacheOptions()
			tt.mutate(o)
			if errs := o.Validate(); len(errs) != tt.wantErr {
				t.Errorf("got %d errors (%v), want %d", len(errs), errs, tt.wantErr)
			}
		})
	}
}

func TestMqttOptions(t *testing.T) {
	o := NewMqttOptions()
	if o.Enabled() {
		t.Fatal("mqtt should be disabled without a broker")
	}

	o.Broker = "tcp://localhost:1883"
	o.QoS = 3
	if errs := o.Validate(); len(errs) != 1 {
		t.Fatalf("expected qos error, got %v", errs)
	}

	cfg := o.ToClientConfig()
	if cfg.BrokerURL != o.Broker || cfg.KeepAlive != 60 {
		t.Errorf("unexpected client config: %+v", cfg)
	}
}
