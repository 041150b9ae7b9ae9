package model

import (
	"strings"
)

// Accident is the accident-history flag.
type Accident string

const (
	AccidentNone Accident = "keine"
	AccidentYes  Accident = "ja"
)

// Fuel is the fuel type.
type Fuel string

const (
	FuelGasoline Fuel = "benzin"
	FuelDiesel   Fuel = "diesel"
)

// Transmission is the gearbox type.
type Transmission string

const (
	TransmissionManual    Transmission = "manuell"
	TransmissionAutomatic Transmission = "automatik"
)

// VehicleDraft is a vehicle payload without server-assigned identity. It is
// what gets submitted for creation. JSON names follow the backend contract.
type VehicleDraft struct {
	Make         string       `json:"marke"`
	Model        string       `json:"modell"`
	Year         int          `json:"baujahr"`
	Color        string       `json:"farbe"`
	Odometer     int          `json:"kilometer"`
	Accident     Accident     `json:"unfallhistorie"`
	Price        float64      `json:"preis"`
	Fuel         Fuel         `json:"kraftstoffart"`
	Transmission Transmission `json:"getriebe"`

	// InspectionDate is the next emissions/road-worthiness inspection, as the
	// backend's YYYY-MM-DD string. Empty when unknown.
	InspectionDate string `json:"au_hu"`

	Power        int     `json:"leistung"`
	Weight       int     `json:"gewicht"`
	Displacement float64 `json:"hubraum"`
	VIN          string  `json:"vin"`

	// Features and Extras are sets drawn from FeatureCatalog and ExtraCatalog.
	Features []string `json:"ausstattung"`
	Extras   []string `json:"extras"`

	Notes string `json:"sonstigeMerkmale"`
}

// Image is a server-side asset attached to a persisted vehicle.
type Image struct {
	AssetID int64  `json:"id"`
	URL     string `json:"image"`
}

// ResolveURL returns the image URL, prefixing base when the server returned a
// path relative to the API root.
func (i Image) ResolveURL(base string) string {
	if i.URL == "" || strings.HasPrefix(i.URL, "http") {
		return i.URL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(i.URL, "/")
}

// VehicleRecord is a persisted vehicle: it has an id assigned by the backend.
// Only persisted records are ever cached.
type VehicleRecord struct {
	ID int64 `json:"id"`
	VehicleDraft
	Images []Image `json:"images"`
}

// Persisted reports whether the record carries a server-assigned id.
func (r *VehicleRecord) Persisted() bool {
	return r != nil && r.ID > 0
}

// Title is the "make model" label used in listings.
func (r *VehicleRecord) Title() string {
	return strings.TrimSpace(r.Make + " " + r.Model)
}

// Thumbnail returns the first image, if any.
func (r *VehicleRecord) Thumbnail() (Image, bool) {
	if len(r.Images) == 0 {
		return Image{}, false
	}
	return r.Images[0], true
}

// Clone returns a deep copy so that callers cannot mutate shared slices.
func (r VehicleRecord) Clone() VehicleRecord {
	out := r
	out.Features = append([]string(nil), r.Features...)
	out.Extras = append([]string(nil), r.Extras...)
	out.Images = append([]Image(nil), r.Images...)
	return out
}

// CloneRecords deep-copies a record list, preserving order.
func CloneRecords(in []VehicleRecord) []VehicleRecord {
	if in == nil {
		return nil
	}
	out := make([]VehicleRecord, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
