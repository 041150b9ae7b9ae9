package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autopeer-io/inventory/cmd/cpeer-inventory/app/options"
	"github.com/autopeer-io/inventory/internal/inventory"
	"github.com/autopeer-io/inventory/internal/pkg/metrics"
	"github.com/autopeer-io/inventory/pkg/app"
)

const (
	commandName = "cpeer-inventory"
	commandDesc = `cpeer-inventory manages a personal vehicle inventory kept on a remote
backend. The last list fetched from the backend is mirrored into a local
cache, so the inventory stays readable while the backend is unreachable.`
)

func NewApp() *app.App {
	opts := options.NewInventoryOptions()
	application := app.NewApp(
		commandName,
		"Browse, add and delete vehicles in the inventory",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithLogOptions(opts.Log),
		app.WithCommands(
			newListCommand(opts),
			newLatestCommand(opts),
			newShowCommand(opts),
			newAddCommand(opts),
			newDeleteCommand(opts),
			newUploadImagesCommand(opts),
			newCatalogCommand(),
		),
		app.WithShutdown(writeMetrics(opts)),
	)
	return application
}

// withInventory builds the inventory for one command invocation and closes
// it afterwards.
func withInventory(opts *options.InventoryOptions, fn func(ctx context.Context, inv *inventory.Inventory, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := app.Context(cmd)

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		inv, err := cfg.NewInventory(ctx)
		if err != nil {
			return fmt.Errorf("failed to create inventory: %w", err)
		}
		defer inv.Close(context.WithoutCancel(ctx))

		return fn(ctx, inv, args)
	}
}

func writeMetrics(opts *options.InventoryOptions) func() error {
	return func() error {
		if opts.MetricsOptions.TextfilePath == "" {
			return nil
		}
		if err := metrics.WriteTextfile(opts.MetricsOptions.TextfilePath); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	}
}
