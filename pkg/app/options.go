package app

import (
	cliflag "k8s.io/component-base/cli/flag"
)

// CliOptions abstracts configuration options for reading parameters from the
// command line.
type CliOptions interface {
	// Flags returns the option groups, one flag set per group.
	Flags() cliflag.NamedFlagSets

	// Validate aggregates every invalid option.
	Validate() error
}

// NamedFlagSetOptions is a CliOptions that can fill in derived values after
// flags and the config file have been parsed.
type NamedFlagSetOptions interface {
	CliOptions

	Complete() error
}
