// Package cache implements the persistent local key/value store that mirrors
// the last known-good inventory.
package cache

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/pkg/options"
)

// Store is a core.CacheStore that holds resources until closed.
type Store interface {
	core.CacheStore
	io.Closer
}

// New opens the backend selected by opts. Backends create their storage on
// first use, so no further setup is needed.
func New(opts *options.CacheOptions) (Store, error) {
	switch opts.Driver {
	case options.CacheDriverSQLite:
		return OpenSQLite(opts.Path)
	case options.CacheDriverRedis:
		return NewRedis(opts.RedisAddr, opts.RedisDB)
	case options.CacheDriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", opts.Driver)
	}
}

var errClosed = errors.New("store is closed")

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", core.ErrCacheUnavailable, op, err)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: cache key is required", core.ErrCacheUnavailable)
	}
	return nil
}
