package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/autopeer-io/inventory/internal/inventory/assets"
	"github.com/autopeer-io/inventory/internal/inventory/cache"
	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/service"
	"github.com/autopeer-io/inventory/internal/inventory/notifier"
	"github.com/autopeer-io/inventory/internal/inventory/remote"
	"github.com/autopeer-io/inventory/pkg/log"
	"github.com/autopeer-io/inventory/pkg/options"
)

type Config struct {
	ApiOptions   *options.ApiOptions
	CacheOptions *options.CacheOptions
	S3Options    *options.S3Options
	MqttOptions  *options.MqttOptions
}

// Inventory bundles the synchronization service with the adapters it was
// built from. Close releases them.
type Inventory struct {
	*service.Service

	Remote *remote.Client
	Assets *assets.Loader

	closers []func(context.Context) error
}

func (cfg *Config) NewInventory(ctx context.Context) (*Inventory, error) {
	inv := &Inventory{}

	// 1. Remote repository (secondary adapter)
	client, err := remote.New(cfg.ApiOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to init backend client: %w", err)
	}
	inv.Remote = client

	// 2. Local cache store. An unavailable cache is not fatal: the service
	// treats it as empty.
	var store core.CacheStore
	if s, err := cache.New(cfg.CacheOptions); err != nil {
		log.Warn("Local cache unavailable, continuing without it", "driver", cfg.CacheOptions.Driver, "error", err)
		store = unavailableCache{err: err}
	} else {
		store = s
		inv.closers = append(inv.closers, func(context.Context) error { return s.Close() })
	}

	// 3. Asset sources
	loader, err := assets.NewLoader(cfg.S3Options)
	if err != nil {
		inv.Close(ctx)
		return nil, fmt.Errorf("failed to init asset loader: %w", err)
	}
	inv.Assets = loader

	// 4. Event notifier
	var events core.EventNotifier = notifier.NewLogNotifier()
	if cfg.MqttOptions.Enabled() {
		n, err := notifier.NewMQTTNotifier(ctx, cfg.MqttOptions)
		if err != nil {
			log.Warn("Event publishing disabled", "broker", cfg.MqttOptions.Broker, "error", err)
		} else {
			events = n
			inv.closers = append(inv.closers, func(ctx context.Context) error { n.Close(ctx); return nil })
		}
	}

	// 5. Core service
	inv.Service = service.New(client, store, service.WithNotifier(events))
	return inv, nil
}

// Close stops the service and releases every adapter, last opened first.
func (inv *Inventory) Close(ctx context.Context) error {
	if inv.Service != nil {
		inv.Service.Close()
	}
	var errs []error
	for i := len(inv.closers) - 1; i >= 0; i-- {
		errs = append(errs, inv.closers[i](ctx))
	}
	inv.closers = nil
	return errors.Join(errs...)
}

// unavailableCache stands in for a cache backend that failed to open.
type unavailableCache struct {
	err error
}

func (c unavailableCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, fmt.Errorf("%w: %v", core.ErrCacheUnavailable, c.err)
}

func (c unavailableCache) Set(context.Context, string, []byte) error {
	return fmt.Errorf("%w: %v", core.ErrCacheUnavailable, c.err)
}
