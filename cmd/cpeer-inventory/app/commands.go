package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autopeer-io/inventory/cmd/cpeer-inventory/app/options"
	"github.com/autopeer-io/inventory/internal/inventory"
	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

const defaultLatest = 2

func newListCommand(opts *options.InventoryOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every vehicle, falling back to the local cache when the backend is down",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withInventory(opts, func(ctx context.Context, inv *inventory.Inventory, _ []string) error {
		records, err := inv.LoadInventory(ctx)
		return render(cmd, output, records, err)
	})
	addOutputFlag(cmd, &output)
	return cmd
}

func newLatestCommand(opts *options.InventoryOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "latest [N]",
		Short: fmt.Sprintf("Show the first N vehicles (default %d)", defaultLatest),
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.RunE = withInventory(opts, func(ctx context.Context, inv *inventory.Inventory, args []string) error {
		n := defaultLatest
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return fmt.Errorf("N must be a non-negative number, got %q", args[0])
			}
			n = v
		}
		records, err := inv.Latest(ctx, n)
		return render(cmd, output, records, err)
	})
	addOutputFlag(cmd, &output)
	return cmd
}

func newShowCommand(opts *options.InventoryOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one vehicle from the last known inventory",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withInventory(opts, func(ctx context.Context, inv *inventory.Inventory, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := inv.Vehicle(ctx, id)
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("vehicle %d is not in the cached inventory, run 'list' first", id)
		}
		if err != nil {
			return err
		}
		if output == outputJSON {
			return printJSON(cmd.OutOrStdout(), r)
		}
		printVehicle(cmd.OutOrStdout(), r, inv.Remote.BaseURL())
		return nil
	})
	addOutputFlag(cmd, &output)
	return cmd
}

func newAddCommand(opts *options.InventoryOptions) *cobra.Command {
	var (
		draft                        model.VehicleDraft
		accident, fuel, transmission string
		images                       []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a vehicle, then attach its images",
		Long: `Create a vehicle on the backend, then upload its images in a single batch.

Images are local paths or s3://bucket/key references (requires --s3.endpoint).
If the vehicle is created but the upload fails, the vehicle is kept and the
upload can be retried with 'upload-images'.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = withInventory(opts, func(ctx context.Context, inv *inventory.Inventory, _ []string) error {
		files, err := inv.Assets.Load(ctx, images)
		if err != nil {
			return err
		}

		draft.Accident = model.Accident(accident)
		draft.Fuel = model.Fuel(fuel)
		draft.Transmission = model.Transmission(transmission)

		out, err := inv.AddVehicle(ctx, &draft, files)
		if err != nil {
			return describeCreateError(err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Created vehicle %d (%s)\n", out.Record.ID, out.Record.Title())
		if out.UploadErr != nil {
			return fmt.Errorf("vehicle %d was created but its images were not attached, retry with 'upload-images %d': %w",
				out.Record.ID, out.Record.ID, out.UploadErr)
		}
		if len(files) > 0 {
			fmt.Fprintf(w, "Attached %d image(s)\n", len(files))
		}
		return nil
	})

	fs := cmd.Flags()
	fs.StringVar(&draft.Make, "make", "", "Manufacturer.")
	fs.StringVar(&draft.Model, "model", "", "Model name.")
	fs.IntVar(&draft.Year, "year", 0, "Model year.")
	fs.StringVar(&draft.Color, "color", "", "Exterior color.")
	fs.IntVar(&draft.Odometer, "km", 0, "Odometer reading in kilometers.")
	fs.StringVar(&accident, "accident", string(model.AccidentNone), "Accident history: keine or ja.")
	fs.Float64Var(&draft.Price, "price", 0, "Asking price.")
	fs.StringVar(&fuel, "fuel", string(model.FuelGasoline), "Fuel type: benzin or diesel.")
	fs.StringVar(&transmission, "transmission", string(model.TransmissionManual), "Transmission: manuell or automatik.")
	fs.StringVar(&draft.InspectionDate, "inspection", "", "Next inspection date (YYYY-MM-DD).")
	fs.IntVar(&draft.Power, "power", 0, "Power rating.")
	fs.IntVar(&draft.Weight, "weight", 0, "Weight.")
	fs.Float64Var(&draft.Displacement, "displacement", 0, "Engine displacement.")
	fs.StringVar(&draft.VIN, "vin", "", "Vehicle identification number.")
	fs.StringArrayVar(&draft.Features, "feature", nil, "Feature from the catalog, repeatable. See 'catalog'.")
	fs.StringArrayVar(&draft.Extras, "extra", nil, "Extra from the catalog, repeatable. See 'catalog'.")
	fs.StringVar(&draft.Notes, "notes", "", "Free-text notes.")
	fs.StringArrayVarP(&images, "image", "i", nil, "Image to attach, repeatable.")
	return cmd
}

func newDeleteCommand(opts *options.InventoryOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a vehicle",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withInventory(opts, func(ctx context.Context, inv *inventory.Inventory, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := inv.RemoveVehicle(ctx, id); err != nil {
			return fmt.Errorf("vehicle %d was not deleted: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted vehicle %d\n", id)
		return nil
	})
	return cmd
}

func newUploadImagesCommand(opts *options.InventoryOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload-images ID IMAGE...",
		Short: "Attach images to an existing vehicle",
		Args:  cobra.MinimumNArgs(2),
	}
	cmd.RunE = withInventory(opts, func(ctx context.Context, inv *inventory.Inventory, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		files, err := inv.Assets.Load(ctx, args[1:])
		if err != nil {
			return err
		}
		if err := inv.RetryUpload(ctx, id, files); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Attached %d image(s) to vehicle %d\n", len(files), id)
		return nil
	})
	return cmd
}

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the accepted feature and extra tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCatalog(cmd.OutOrStdout())
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("ID must be a positive number, got %q", s)
	}
	return id, nil
}

// describeCreateError spells out every field the backend rejected, headline
// first.
func describeCreateError(err error) error {
	var ve *core.ValidationError
	if !errors.As(err, &ve) || ve.Fields.Empty() || len(ve.Fields.Keys) == 1 {
		return err
	}
	msg := ve.Fields.Headline()
	for _, k := range ve.Fields.Keys[1:] {
		msg += fmt.Sprintf("; %s: %s", k, strings.Join(ve.Fields.Messages[k], ", "))
	}
	return fmt.Errorf("vehicle was not created: %s", msg)
}

// render prints records. When the backend failed but cached data is
// available the data is shown with a warning instead of failing.
func render(cmd *cobra.Command, output string, records []model.VehicleRecord, err error) error {
	if err != nil {
		if len(records) == 0 {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: backend unavailable, showing cached inventory: %v\n", err)
	}
	return printRecords(cmd.OutOrStdout(), output, records)
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", outputTable, "Output format: table or json.")
}
