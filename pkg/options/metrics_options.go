package options

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"
)

var _ IOptions = (*MetricsOptions)(nil)

// MetricsOptions controls where sync metrics are exported. The CLI is short
// lived, so metrics are written once to a node-exporter textfile on exit.
type MetricsOptions struct {
	TextfilePath string `json:"textfile" mapstructure:"textfile"`
}

func NewMetricsOptions() *MetricsOptions {
	return &MetricsOptions{}
}

func (o *MetricsOptions) Validate() []error {
	errors := []error{}
	if o.TextfilePath != "" && filepath.Ext(o.TextfilePath) != ".prom" {
		errors = append(errors, fmt.Errorf("--metrics.textfile must end in .prom, got %q", o.TextfilePath))
	}
	return errors
}

func (o *MetricsOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.TextfilePath, "metrics.textfile", o.TextfilePath, "Write sync metrics to this node-exporter textfile (*.prom) on exit.")
}
