package options

import (
	"fmt"
	"os"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/inventory/internal/inventory"
	"github.com/autopeer-io/inventory/pkg/app"
	"github.com/autopeer-io/inventory/pkg/log"
	"github.com/autopeer-io/inventory/pkg/options"
)

type InventoryOptions struct {
	ApiOptions     *options.ApiOptions     `json:"api" mapstructure:"api"`
	CacheOptions   *options.CacheOptions   `json:"cache" mapstructure:"cache"`
	S3Options      *options.S3Options      `json:"s3" mapstructure:"s3"`
	MqttOptions    *options.MqttOptions    `json:"mqtt" mapstructure:"mqtt"`
	MetricsOptions *options.MetricsOptions `json:"metrics" mapstructure:"metrics"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*InventoryOptions)(nil)

func NewInventoryOptions() *InventoryOptions {
	o := &InventoryOptions{
		ApiOptions:     options.NewApiOptions(),
		CacheOptions:   options.NewCacheOptions(),
		S3Options:      options.NewS3Options(),
		MqttOptions:    options.NewMqttOptions(),
		MetricsOptions: options.NewMetricsOptions(),
		Log:            log.NewOptions(),
	}

	return o
}

func (o *InventoryOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.ApiOptions.AddFlags(fss.FlagSet("api"))
	o.CacheOptions.AddFlags(fss.FlagSet("cache"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.MetricsOptions.AddFlags(fss.FlagSet("metrics"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *InventoryOptions) Complete() error {
	if o.MqttOptions.Enabled() && o.MqttOptions.ClientID == "" {
		hostname, _ := os.Hostname()
		o.MqttOptions.ClientID = fmt.Sprintf("cpeer-inventory-%s", hostname)
	}
	return nil
}

func (o *InventoryOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.ApiOptions.Validate()...)
	errs = append(errs, o.CacheOptions.Validate()...)
	errs = append(errs, o.S3Options.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.MetricsOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *InventoryOptions) Config() (*inventory.Config, error) {
	return &inventory.Config{
		ApiOptions:   o.ApiOptions,
		CacheOptions: o.CacheOptions,
		S3Options:    o.S3Options,
		MqttOptions:  o.MqttOptions,
	}, nil
}
