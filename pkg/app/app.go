// Package app builds cobra commands from option structs: flags are grouped
// by option group, values are layered from a config file, the environment
// and the command line, and the logger is initialized before running.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	genericapiserver "k8s.io/apiserver/pkg/server"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/term"

	"github.com/autopeer-io/inventory/pkg/log"
)

// RunFunc is the main work of a command without subcommands.
type RunFunc func() error

// App is the main structure of a cli application.
type App struct {
	name        string
	shortDesc   string
	description string
	options     CliOptions
	logOptions  *log.Options
	runFunc     RunFunc
	shutdown    []func() error
	commands    []*cobra.Command
	args        cobra.PositionalArgs
	cmd         *cobra.Command
}

// Option defines optional parameters for initializing the application
// structure.
type Option func(*App)

// WithOptions to open the application's function to read from the command
// line or read parameters from the configuration file.
func WithOptions(opts CliOptions) Option {
	return func(a *App) { a.options = opts }
}

// WithLogOptions initializes the global logger from opts once flags are
// parsed.
func WithLogOptions(opts *log.Options) Option {
	return func(a *App) { a.logOptions = opts }
}

// WithRunFunc is used to set the application startup callback function option.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

// WithDescription is used to set the description of the application.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithDefaultValidArgs set default validation function to valid non-flag
// arguments.
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if len(arg) > 0 {
					return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
				}
			}
			return nil
		}
	}
}

// WithCommands attaches subcommands. They share the root's flags.
func WithCommands(cmds ...*cobra.Command) Option {
	return func(a *App) { a.commands = append(a.commands, cmds...) }
}

// WithShutdown registers a hook that Execute runs after the command, even
// when it failed.
func WithShutdown(fn func() error) Option {
	return func(a *App) { a.shutdown = append(a.shutdown, fn) }
}

// NewApp creates a new application instance based on the given application
// name, short description, and other options.
func NewApp(name string, shortDesc string, opts ...Option) *App {
	a := &App{name: name, shortDesc: shortDesc}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

// Command returns the root cobra command.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run executes the application with a context cancelled on SIGTERM/SIGINT
// and exits non-zero on failure.
func (a *App) Run() {
	if err := a.Execute(genericapiserver.SetupSignalContext()); err != nil {
		os.Exit(1)
	}
}

// Execute runs the command tree with ctx, then the shutdown hooks.
func (a *App) Execute(ctx context.Context) error {
	err := a.cmd.ExecuteContext(ctx)
	return errors.Join(err, a.runShutdown())
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.shortDesc,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true
	cmd.AddCommand(a.commands...)

	var namedFlagSets cliflag.NamedFlagSets
	if a.options != nil {
		namedFlagSets = a.options.Flags()
	}
	cfgFile := addConfigFlag(a.name, namedFlagSets.FlagSet("global"))

	fs := cmd.PersistentFlags()
	for _, f := range namedFlagSets.FlagSets {
		fs.AddFlagSet(f)
	}

	cols, _, _ := term.TerminalSize(cmd.OutOrStdout())
	cliflag.SetUsageAndHelpFunc(cmd, namedFlagSets, cols)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.prepare(*cfgFile, cmd)
	}
	if a.runFunc != nil {
		cmd.RunE = func(*cobra.Command, []string) error {
			return a.runFunc()
		}
	}

	a.cmd = cmd
}

// prepare layers config file and environment values under the parsed
// flags, then completes and validates the options.
func (a *App) prepare(cfgFile string, cmd *cobra.Command) error {
	if a.options != nil {
		v, err := newViper(a.name, cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if err := v.Unmarshal(a.options); err != nil {
			return fmt.Errorf("failed to decode configuration: %w", err)
		}
		if c, ok := a.options.(NamedFlagSetOptions); ok {
			if err := c.Complete(); err != nil {
				return err
			}
		}
		if err := a.options.Validate(); err != nil {
			return err
		}
	}

	if a.logOptions != nil {
		log.Init(a.logOptions)
	}
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		log.Warn("Failed to set GOMAXPROCS", "error", err)
	}
	return nil
}

func (a *App) runShutdown() error {
	var errs []error
	for _, fn := range a.shutdown {
		errs = append(errs, fn())
	}
	_ = log.Sync()
	return errors.Join(errs...)
}

// Context returns the command's context, falling back to Background for
// commands executed without one.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
