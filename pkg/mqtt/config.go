package mqtt

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ClientConfig describes the broker connection used to publish inventory
// events. Zero KeepAlive (seconds) and ConnectTimeout take the defaults
// below.
type ClientConfig struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string

	KeepAlive      uint16
	ConnectTimeout time.Duration

	// Publishers keep no session state, so this is normally true.
	CleanStart         bool
	InsecureSkipVerify bool
}

func setDefaultConfig(cfg *ClientConfig) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}

	if cfg.KeepAlive == 0 {
		cfg.KeepAlive = 60
	}
}

// Validate requires a broker URL with a host and a client id.
func (c *ClientConfig) Validate() error {
	if c.BrokerURL == "" {
		return errors.New("broker url is required")
	}
	u, err := url.Parse(c.BrokerURL)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return fmt.Errorf("broker url %q has no host", c.BrokerURL)
	}
	if c.ClientID == "" {
		return errors.New("client id is required")
	}
	return nil
}
