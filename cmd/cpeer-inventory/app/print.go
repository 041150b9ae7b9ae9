package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func printRecords(w io.Writer, output string, records []model.VehicleRecord) error {
	switch output {
	case outputJSON:
		return printJSON(w, records)
	case outputTable, "":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No vehicles.")
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "VEHICLE", "YEAR", "KM", "PRICE", "FUEL", "GEARBOX", "IMAGES")
	for _, r := range records {
		table.AddRow(r.ID, r.Title(), r.Year, r.Odometer, formatPrice(r.Price), r.Fuel, r.Transmission, len(r.Images))
	}
	fmt.Fprintln(w, table)
	return nil
}

func printVehicle(w io.Writer, r *model.VehicleRecord, base string) {
	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true

	table.AddRow("ID:", r.ID)
	table.AddRow("Vehicle:", r.Title())
	table.AddRow("Year:", r.Year)
	table.AddRow("Color:", r.Color)
	table.AddRow("Kilometers:", r.Odometer)
	table.AddRow("Accident history:", r.Accident)
	table.AddRow("Price:", formatPrice(r.Price))
	table.AddRow("Fuel:", r.Fuel)
	table.AddRow("Transmission:", r.Transmission)
	table.AddRow("Inspection:", r.InspectionDate)
	table.AddRow("Power:", r.Power)
	table.AddRow("Weight:", r.Weight)
	table.AddRow("Displacement:", strconv.FormatFloat(r.Displacement, 'f', -1, 64))
	table.AddRow("VIN:", r.VIN)
	table.AddRow("Features:", strings.Join(r.Features, ", "))
	table.AddRow("Extras:", strings.Join(r.Extras, ", "))
	table.AddRow("Notes:", r.Notes)
	for i, img := range r.Images {
		label := ""
		if i == 0 {
			label = "Images:"
		}
		table.AddRow(label, img.ResolveURL(base))
	}
	fmt.Fprintln(w, table)
}

func printCatalog(w io.Writer) {
	table := uitable.New()
	table.AddRow("FEATURES", "EXTRAS")
	for i := 0; i < max(len(model.FeatureCatalog), len(model.ExtraCatalog)); i++ {
		var feature, extra string
		if i < len(model.FeatureCatalog) {
			feature = model.FeatureCatalog[i]
		}
		if i < len(model.ExtraCatalog) {
			extra = model.ExtraCatalog[i]
		}
		table.AddRow(feature, extra)
	}
	fmt.Fprintln(w, table)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
