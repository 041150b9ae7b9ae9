package inventory

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/internal/inventory/remote/fakebackend"
	"github.com/autopeer-io/inventory/pkg/options"
)

func newConfig(t *testing.T, baseURL string) *Config {
	t.Helper()
	cfg := &Config{
		ApiOptions:   options.NewApiOptions(),
		CacheOptions: options.NewCacheOptions(),
		S3Options:    options.NewS3Options(),
		MqttOptions:  options.NewMqttOptions(),
	}
	cfg.ApiOptions.BaseURL = baseURL
	cfg.CacheOptions.Path = filepath.Join(t.TempDir(), "cache.db")
	return cfg
}

func TestNewInventoryPersistsSnapshotAcrossRuns(t *testing.T) {
	ctx := context.Background()
	backend := fakebackend.New()
	t.Cleanup(backend.Close)
	backend.Seed(model.VehicleRecord{ID: 4, VehicleDraft: model.VehicleDraft{Make: "Seat", Model: "Leon"}})

	cfg := newConfig(t, backend.URL())

	first, err := cfg.NewInventory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.LoadInventory(ctx); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(ctx); err != nil {
		t.Fatal(err)
	}

	// A later process finds the backend down and serves the snapshot.
	backend.Fail("list", 503, "")
	second, err := cfg.NewInventory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close(ctx)

	got, err := second.LoadInventory(ctx)
	if core.StatusCode(err) != 503 {
		t.Errorf("err = %v, want status 503", err)
	}
	if len(got) != 1 || got[0].ID != 4 {
		t.Errorf("records = %+v", got)
	}
}

func TestNewInventoryWithoutCache(t *testing.T) {
	ctx := context.Background()
	cfg := newConfig(t, "http://127.0.0.1:1")
	cfg.CacheOptions.Driver = options.CacheDriverRedis
	cfg.CacheOptions.RedisAddr = "127.0.0.1:1"

	inv, err := cfg.NewInventory(ctx)
	if err != nil {
		t.Fatalf("an unreachable cache must not be fatal: %v", err)
	}
	defer inv.Close(ctx)

	got, err := inv.LoadInventory(ctx)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !reflect.DeepEqual(got, []model.VehicleRecord{}) {
		t.Errorf("records = %#v, want empty", got)
	}

	if _, err := inv.Vehicle(ctx, 1); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Vehicle: %v", err)
	}
}
