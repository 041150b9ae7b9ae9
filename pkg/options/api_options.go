package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*ApiOptions)(nil)

// ApiOptions contains the settings used to reach the inventory backend.
type ApiOptions struct {
	// BaseURL is the backend root, e.g. https://api.example.com. Paths such as
	// /cars/ are appended to it.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout bounds a single HTTP exchange. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// UserAgent is sent with every request.
	UserAgent string `json:"user-agent" mapstructure:"user-agent"`
}

// NewApiOptions creates an ApiOptions object with default parameters.
func NewApiOptions() *ApiOptions {
	return &ApiOptions{
		BaseURL:   "http://127.0.0.1:8000",
		Timeout:   30 * time.Second,
		UserAgent: "cpeer-inventory",
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *ApiOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if err := ValidateURL(o.BaseURL, "http", "https"); err != nil {
		errors = append(errors, fmt.Errorf("--api.base-url: %w", err))
	}
	if o.Timeout < 0 {
		errors = append(errors, fmt.Errorf("--api.timeout must not be negative"))
	}

	return errors
}

// AddFlags adds flags related to the backend API to the specified FlagSet.
func (o *ApiOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "api.base-url", o.BaseURL, "Base URL of the inventory backend.")
	fs.DurationVar(&o.Timeout, "api.timeout", o.Timeout, "Timeout for a single request to the backend.")
	fs.StringVar(&o.UserAgent, "api.user-agent", o.UserAgent, "User-Agent header sent to the backend.")
}
