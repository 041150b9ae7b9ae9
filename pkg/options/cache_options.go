package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ IOptions = (*CacheOptions)(nil)

const (
	CacheDriverSQLite = "sqlite"
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

// CacheOptions selects and configures the local cache backend.
type CacheOptions struct {
	// Driver is one of sqlite, redis or memory.
	Driver string `json:"driver" mapstructure:"driver"`

	// Path is the SQLite database file. Created if absent.
	Path string `json:"path" mapstructure:"path"`

	// RedisAddr is the host:port of the redis server when Driver is redis.
	RedisAddr string `json:"redis-addr" mapstructure:"redis-addr"`

	// RedisDB selects the redis logical database.
	RedisDB int `json:"redis-db" mapstructure:"redis-db"`
}

// NewCacheOptions creates a CacheOptions object with default parameters.
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Driver:    CacheDriverSQLite,
		Path:      "cpeer-inventory.db",
		RedisAddr: "localhost:6379",
	}
}

func (o *CacheOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	switch o.Driver {
	case CacheDriverSQLite:
		if o.Path == "" {
			errors = append(errors, fmt.Errorf("--cache.path is required for the sqlite driver"))
		}
	case CacheDriverRedis:
		if err := ValidateAddress(o.RedisAddr); err != nil {
			errors = append(errors, fmt.Errorf("--cache.redis-addr: %w", err))
		}
	case CacheDriverMemory:
	default:
		errors = append(errors, fmt.Errorf("--cache.driver must be one of %s, %s, %s; got %q",
			CacheDriverSQLite, CacheDriverRedis, CacheDriverMemory, o.Driver))
	}

	return errors
}

func (o *CacheOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Driver, "cache.driver", o.Driver, "Local cache backend: sqlite, redis or memory.")
	fs.StringVar(&o.Path, "cache.path", o.Path, "SQLite file holding the offline inventory snapshot.")
	fs.StringVar(&o.RedisAddr, "cache.redis-addr", o.RedisAddr, "Redis host:port for the redis cache driver.")
	fs.IntVar(&o.RedisDB, "cache.redis-db", o.RedisDB, "Redis database number for the redis cache driver.")
}
